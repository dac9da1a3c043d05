package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/capigen/pipeline"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "check [ok[:err]...]",
		Short: "Verify headers on disk match what generate would write",
		Long: `check renders every result type without writing, runs the cross-dialect
consistency check and diffs the output against the files already on disk.
It exits non-zero on any failure, missing file or drift.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, report, err := execute(cmd.Context(), g, f, args, true)
			if err != nil {
				return err
			}

			st := newStyles(out)
			st.printReport(out, report)

			drifts, err := pipeline.DetectDrift(m.OutputDir, report)
			if err != nil {
				return err
			}
			for _, d := range drifts {
				if d.Missing {
					fmt.Fprintln(out, st.bad.Render("missing ")+d.Path)
					continue
				}
				fmt.Fprintln(out, st.bad.Render("drift ")+d.Path)
				st.printDiff(out, d.Diff)
			}

			if report.Err() != nil || len(drifts) > 0 {
				return errFailed
			}
			fmt.Fprintln(out, st.good.Render("up to date"))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
