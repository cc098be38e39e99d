package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/lint"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check schedules for mistakes",
		Long:  "Check every job's schedule. Exits non-zero when any schedule can never run or would be rejected by cron.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, done, err := a.open(contextOf(cmd))
			if err != nil {
				return err
			}
			defer done()

			issues := lint.Table(s.Table())
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "No issues.")
				return nil
			}

			errs := 0
			for _, issue := range issues {
				fmt.Fprintf(out, "%d: %s\n  %s\n", issue.Index, issue.String(), issue.Job.Render())
				if issue.Severity == lint.SeverityError {
					errs++
				}
			}
			if errs > 0 {
				return fmt.Errorf("%d schedule error(s)", errs)
			}
			return nil
		},
	}
}
