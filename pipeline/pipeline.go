package pipeline

import (
	"context"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/capigen/check"
	"github.com/wippyai/capigen/dialect"
	"github.com/wippyai/capigen/emit"
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/layout"
	"github.com/wippyai/capigen/model"
	"github.com/wippyai/capigen/probe"
)

type Config struct {
	OutputDir string
	DataModel abi.DataModel
	Workers   int  // 0 means GOMAXPROCS
	DryRun    bool // render and check but write nothing
	Probe     bool // exchange values in wasm32 memory during checks
}

type Pipeline struct {
	registry *dialect.Registry
	resolver *layout.Resolver
	cfg      Config
}

// New seals reg and prepares a pipeline over its dialects.
func New(reg *dialect.Registry, cfg Config) (*Pipeline, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, errors.InvalidConfig("no dialects registered", nil)
	}
	if cfg.DataModel.PointerSize == 0 {
		cfg.DataModel = abi.LP64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.OutputDir == "" && !cfg.DryRun {
		return nil, errors.InvalidConfig("output directory is required", nil)
	}
	reg.Seal()

	return &Pipeline{
		registry: reg,
		resolver: layout.NewResolver(cfg.DataModel),
		cfg:      cfg,
	}, nil
}

// Run processes every model. The returned error covers only setup problems
// and cancellation; per-model failures are in the report.
func (p *Pipeline) Run(ctx context.Context, models []model.TypeModel) (*Report, error) {
	var opts []check.Option
	if p.cfg.Probe {
		pr, err := probe.New(ctx)
		if err != nil {
			return nil, err
		}
		defer pr.Close(ctx)
		opts = append(opts, check.WithProbe(pr))
	}
	checker := check.New(p.resolver, opts...)
	dialects := p.registry.All()

	report := &Report{Outcomes: make([]Outcome, len(models))}
	seen := make(map[string]model.TypeModel, len(models))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, m := range models {
		report.Outcomes[i].Model = m.Name
		if prev, dup := seen[m.Name]; dup {
			detail := "duplicate result type"
			if prev != m {
				detail = "name already used by a different result type; set an explicit name"
			}
			report.Outcomes[i].Err = errors.InvalidModel(m.Name, detail)
			continue
		}
		seen[m.Name] = m

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Outcomes[i].Err = err
				return nil
			}
			report.Outcomes[i] = p.process(gctx, checker, dialects, m)
			return nil
		})
	}
	_ = g.Wait()

	Logger().Info("generation finished",
		zap.Int("models", len(models)),
		zap.Int("failed", len(report.Failed())),
		zap.Int("written", report.Written()),
		zap.Bool("dry_run", p.cfg.DryRun))

	return report, ctx.Err()
}

func (p *Pipeline) process(ctx context.Context, checker *check.Checker, dialects []dialect.Dialect, m model.TypeModel) Outcome {
	out := Outcome{Model: m.Name}
	if err := m.Validate(); err != nil {
		out.Err = err
		return out
	}

	l := p.resolver.Resolve(m)
	out.Fingerprint = layout.Fingerprint(l)
	Logger().Debug("layout resolved",
		zap.String("model", m.Name),
		zap.String("storage", l.Storage.String()),
		zap.Uint32("size", l.Size),
		zap.Uint64("fingerprint", out.Fingerprint))

	var errs error
	for _, d := range dialects {
		res, err := emit.Emit(l, d)
		if err != nil {
			Logger().Warn("dialect rejected model",
				zap.String("model", m.Name),
				zap.String("dialect", d.ID),
				zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		out.Results = append(out.Results, res)
	}

	if err := checker.Check(ctx, out.Results); err != nil {
		Logger().Error("layout mismatch", zap.String("model", m.Name), zap.Error(err))
		out.Err = multierr.Append(errs, err)
		out.Results = nil
		return out
	}

	if !p.cfg.DryRun {
		for _, res := range out.Results {
			path := filepath.Join(p.cfg.OutputDir, res.FileName)
			changed, err := writeFile(path, []byte(res.Text))
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			out.Files = append(out.Files, path)
			if changed {
				out.Changed++
				Logger().Debug("header written", zap.String("path", path))
			}
		}
	}

	out.Err = errs
	return out
}
