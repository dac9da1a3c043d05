package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/capigen/check"
	"github.com/wippyai/capigen/config"
	"github.com/wippyai/capigen/pipeline"
)

// errFailed is returned after a failure has already been reported.
var errFailed = errors.New("generation failed")

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "capigen",
		Short:         "Generate C headers for fallible result types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			pipeline.SetLogger(logger.Named("pipeline"))
			check.SetLogger(logger.Named("check"))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&g.config, "config", "c", "", "manifest file (default "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(
		newGenerateCmd(g),
		newCheckCmd(g),
		newDialectsCmd(g),
		newBrowseCmd(g),
	)
	return root
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadManifest reads the manifest named by path, falling back to the default
// file and then to built-in defaults. Positional "ok[:err]" arguments add
// result types.
func loadManifest(path string, args []string) (*config.Manifest, error) {
	var (
		m   *config.Manifest
		err error
	)
	switch {
	case path != "":
		m, err = config.Load(path)
	case fileExists(config.DefaultFile):
		m, err = config.Load(config.DefaultFile)
	default:
		m = config.Default()
	}
	if err != nil {
		return nil, err
	}

	for _, arg := range args {
		ok, errType, _ := strings.Cut(arg, ":")
		m.Results = append(m.Results, config.ResultEntry{OK: ok, Err: errType})
	}
	return m, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
