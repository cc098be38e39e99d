package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/job"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// selector holds the flags shared by list and remove.
type selector struct {
	command string
	comment string
	indexes []int
}

func (s *selector) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.command, "command", "c", "", "Match jobs whose command contains this text")
	cmd.Flags().StringVarP(&s.comment, "comment", "m", "", "Match jobs whose comment contains this text")
	cmd.Flags().IntSliceVarP(&s.indexes, "index", "i", nil, "Match jobs by index as shown by list")
}

func (s *selector) empty() bool {
	return s.command == "" && s.comment == "" && len(s.indexes) == 0
}

// selected returns matching jobs with their indexes. Text filters and
// indexes must all match.
func (s *selector) selected(t *table.Table) ([]int, []*job.Job) {
	var f table.Filter
	if s.command != "" {
		f.Command = job.Contains(s.command)
	}
	if s.comment != "" {
		f.Comment = job.Contains(s.comment)
	}
	wanted := make(map[int]bool, len(s.indexes))
	for _, i := range s.indexes {
		wanted[i] = true
	}

	var (
		indexes []int
		jobs    []*job.Job
	)
	for i, j := range t.Jobs() {
		if len(wanted) > 0 && !wanted[i] {
			continue
		}
		if f.Match(j) {
			indexes = append(indexes, i)
			jobs = append(jobs, j)
		}
	}
	return indexes, jobs
}

func newListCmd(a *app) *cobra.Command {
	var (
		sel    selector
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, done, err := a.open(contextOf(cmd))
			if err != nil {
				return err
			}
			defer done()

			indexes, jobs := sel.selected(s.Table())
			records := make([]jobRecord, len(jobs))
			for n, j := range jobs {
				records[n] = newJobRecord(indexes[n], j)
			}

			return write(cmd.OutOrStdout(), format, records, func(tw *tabwriter.Writer) {
				if len(records) == 0 {
					fmt.Fprintln(tw, "No jobs.")
					return
				}
				fmt.Fprintln(tw, "INDEX\tSCHEDULE\tCOMMAND\tCOMMENT")
				for _, r := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Index, r.Schedule, r.Command, r.Comment)
				}
			})
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json or yaml")
	return cmd
}
