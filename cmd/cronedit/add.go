package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/table"
)

// atLayouts are accepted by add --at, most specific first.
var atLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

func parseAt(value string) (time.Time, error) {
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at value %q (want RFC3339 or 2006-01-02T15:04)", value)
}

func newAddCmd(a *app) *cobra.Command {
	var (
		schedule string
		at       string
		comment  string
	)

	cmd := &cobra.Command{
		Use:   "add [flags] -- <command...>",
		Short: "Add a job",
		Long:  "Add a job running command. Without --schedule or --at it runs every minute.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schedule != "" && at != "" {
				return fmt.Errorf("--schedule and --at are mutually exclusive")
			}
			var opts []table.CreateOption
			if schedule != "" {
				opts = append(opts, table.WithSchedule(schedule))
			}
			if at != "" {
				t, err := parseAt(at)
				if err != nil {
					return err
				}
				opts = append(opts, table.At(t))
			}
			if comment != "" {
				opts = append(opts, table.WithComment(comment))
			}

			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			command := strings.Join(args, " ")
			j := s.Table().Create(command, opts...)
			if j == nil {
				return fmt.Errorf("cannot add %q: invalid command, comment or schedule", command)
			}
			if _, err := s.Commit(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", j.Render())
			return nil
		},
	}
	cmd.Flags().StringVarP(&schedule, "schedule", "s", "", "Five-field expression or @name (e.g. '0 9 * * 1-5', '@daily')")
	cmd.Flags().StringVar(&at, "at", "", "Pin to the minute, hour, day and month of this local time")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Inline comment")
	return cmd
}
