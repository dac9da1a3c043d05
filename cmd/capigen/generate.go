package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/capigen/config"
	"github.com/wippyai/capigen/pipeline"
)

type runFlags struct {
	outputDir string
	dataModel string
	workers   int
	probe     bool
	dryRun    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVar(&f.dataModel, "data-model", "", "target data model: lp64, ilp32 (i386), wasm32")
	cmd.Flags().IntVarP(&f.workers, "jobs", "j", 0, "parallel workers (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.probe, "probe", false, "exchange values through wasm32 memory during checks")
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "generate [ok[:err]...]",
		Short: "Render, check and write headers for every result type",
		Example: `  capigen generate -c capigen.toml
  capigen generate -o include f64 'Foo*:u8'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), g, f, args)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "render and check without writing")
	return cmd
}

func runGenerate(ctx context.Context, out io.Writer, g *globalFlags, f *runFlags, args []string) error {
	m, report, err := execute(ctx, g, f, args, f.dryRun)
	if err != nil {
		return err
	}

	st := newStyles(out)
	st.printReport(out, report)
	if f.dryRun {
		fmt.Fprintln(out, st.muted.Render("dry run: nothing written to "+m.OutputDir))
	}
	if report.Err() != nil {
		return errFailed
	}
	return nil
}

// execute loads the manifest, applies flag overrides and runs the pipeline.
func execute(ctx context.Context, g *globalFlags, f *runFlags, args []string, dryRun bool) (*config.Manifest, *pipeline.Report, error) {
	m, err := loadManifest(g.config, args)
	if err != nil {
		return nil, nil, err
	}
	if f.outputDir != "" {
		m.OutputDir = f.outputDir
	}
	if f.dataModel != "" {
		m.DataModel = f.dataModel
	}
	if f.workers > 0 {
		m.Workers = f.workers
	}

	dm, err := m.ResolveDataModel()
	if err != nil {
		return nil, nil, err
	}
	reg, err := m.Registry()
	if err != nil {
		return nil, nil, err
	}
	models, err := m.Models()
	if err != nil {
		return nil, nil, err
	}
	if len(models) == 0 {
		return nil, nil, fmt.Errorf("no result types: add [[result]] entries to the manifest or pass ok[:err] arguments")
	}

	p, err := pipeline.New(reg, pipeline.Config{
		OutputDir: m.OutputDir,
		DataModel: dm,
		Workers:   m.Workers,
		DryRun:    dryRun,
		Probe:     f.probe,
	})
	if err != nil {
		return nil, nil, err
	}

	report, err := p.Run(ctx, models)
	if err != nil {
		return nil, nil, fmt.Errorf("run: %w", err)
	}
	return m, report, nil
}
