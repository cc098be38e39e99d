package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/security"
	"github.com/jdziat/simple-crontab/pkg/table"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the table as it would be saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, done, err := a.open(contextOf(cmd))
			if err != nil {
				return err
			}
			defer done()

			_, err = io.WriteString(cmd.OutOrStdout(), s.Table().Render())
			return err
		},
	}
}

func newApplyCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <file|->",
		Short: "Replace the table with the contents of a file",
		Long:  "Replace the table with the contents of a file, or standard input when the argument is '-'. Lines that do not parse are kept verbatim.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if err := security.ValidateTableSize(text); err != nil {
				return err
			}

			ctx := contextOf(cmd)
			s, done, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			before := s.Table().Render()
			next := table.Load(text)
			diff := table.Diff(before, next.Render(), "current", args[0])
			out := cmd.OutOrStdout()
			if diff == "" {
				fmt.Fprintln(out, "No changes.")
				return nil
			}
			fmt.Fprint(out, diff)
			if dryRun {
				return nil
			}

			s.Table().Load(text)
			_, err = s.Commit(ctx)
			return err
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the diff without saving")
	return cmd
}

func readInput(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
