package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/table"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and restore saved revisions",
		Long:  "Inspect and restore saved revisions. Requires --history or CRONEDIT_HISTORY_DB.",
	}
	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryShowCmd(a))
	cmd.AddCommand(newHistoryDiffCmd(a))
	cmd.AddCommand(newHistoryRestoreCmd(a))
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List revisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			snaps, err := s.History(ctx, limit)
			if err != nil {
				return err
			}
			records := make([]snapshotRecord, len(snaps))
			for i, snap := range snaps {
				records[i] = newSnapshotRecord(snap)
			}

			return write(cmd.OutOrStdout(), format, records, func(tw *tabwriter.Writer) {
				if len(records) == 0 {
					fmt.Fprintln(tw, "No revisions.")
					return
				}
				fmt.Fprintln(tw, "ID\tSOURCE\tJOBS\tLINES\tCREATED")
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Source, r.Jobs, r.Lines, r.Created)
				}
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum revisions to show, 0 for all")
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json or yaml")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the content of a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			snap, err := s.Snapshot(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), snap.Content)
			return nil
		},
	}
}

func newHistoryDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <id>",
		Short: "Show changes between a revision and the current table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			snap, err := s.Snapshot(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Diff(snap.Content, s.Table().Render(), snap.ID, "current"))
			return nil
		},
	}
}

func newHistoryRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Save a revision back as the current table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			restored, err := s.Restore(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s as %s\n", args[0], restored.ID)
			return nil
		},
	}
}
