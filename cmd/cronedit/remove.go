package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var (
		sel    selector
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove jobs",
		Long:  "Remove every job matching all of the given selectors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sel.empty() {
				return fmt.Errorf("remove needs --command, --comment or --index")
			}

			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			_, jobs := sel.selected(s.Table())
			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No matching jobs.")
				return nil
			}
			for _, j := range jobs {
				fmt.Fprintf(out, "Removed: %s\n", j.Render())
			}
			s.Table().Remove(jobs...)
			if dryRun {
				fmt.Fprint(out, s.Table().Changes())
				return nil
			}
			_, err = s.Commit(ctx)
			return err
		},
	}
	sel.bind(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be removed without saving")
	return cmd
}
