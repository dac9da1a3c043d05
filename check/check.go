package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/capigen/emit"
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/layout"
	"github.com/wippyai/capigen/probe"
)

type Checker struct {
	resolver *layout.Resolver
	wasm32   *layout.Resolver
	probe    *probe.Probe
}

type Option func(*Checker)

// WithProbe exchanges values between renderings in wasm32 memory.
func WithProbe(p *probe.Probe) Option {
	return func(c *Checker) { c.probe = p }
}

// New returns a checker that re-places parsed records with r.
func New(r *layout.Resolver, opts ...Option) *Checker {
	c := &Checker{
		resolver: r,
		wasm32:   layout.NewResolver(abi.Wasm32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check verifies a batch of emissions for one result type. Inputs are not
// modified. Batches of zero or one emission pass trivially after the
// fingerprint self-check.
func (c *Checker) Check(ctx context.Context, results []emit.Result) error {
	if len(results) == 0 {
		return nil
	}

	parsed := make([]layout.Layout, len(results))
	for i, r := range results {
		l, err := emit.Reparse(r.Text, c.resolver)
		if err != nil {
			return errors.New(errors.PhaseCheck, errors.KindLayoutMismatch).
				Model(r.Model).
				Dialect(r.DialectID).
				Detail("rendered record cannot be parsed back").
				Cause(err).
				Build()
		}
		if l.Name != r.Model {
			return errors.LayoutMismatch(r.Model, r.DialectID, r.DialectID,
				fmt.Sprintf("record declares %q", l.Name))
		}
		if fp := layout.Fingerprint(l); fp != r.Fingerprint {
			return errors.LayoutMismatch(r.Model, r.DialectID, r.DialectID,
				fmt.Sprintf("rendered fingerprint %016x != recorded %016x", fp, r.Fingerprint))
		}
		parsed[i] = l
		Logger().Debug("rendering verified",
			zap.String("model", r.Model),
			zap.String("dialect", r.DialectID),
			zap.Uint64("fingerprint", r.Fingerprint))
	}

	first := results[0]
	for i := 1; i < len(results); i++ {
		r := results[i]
		if r.Model != first.Model {
			return errors.LayoutMismatch(first.Model, first.DialectID, r.DialectID,
				"batch mixes result types "+first.Model+" and "+r.Model)
		}
		if r.Fingerprint != first.Fingerprint {
			return errors.LayoutMismatch(first.Model, first.DialectID, r.DialectID, layout.Diff(parsed[0], parsed[i]))
		}
	}

	if c.probe != nil {
		return c.probeAll(ctx, results)
	}
	return nil
}

func (c *Checker) probeAll(ctx context.Context, results []emit.Result) error {
	base, err := emit.Reparse(results[0].Text, c.wasm32)
	if err != nil {
		return errors.Probe(results[0].Model, "wasm32 placement", err)
	}
	for _, r := range results[1:] {
		other, err := emit.Reparse(r.Text, c.wasm32)
		if err != nil {
			return errors.Probe(r.Model, "wasm32 placement", err)
		}
		if err := c.probe.Compare(ctx, base, other); err != nil {
			return errors.New(errors.PhaseCheck, errors.KindLayoutMismatch).
				Model(r.Model).
				Dialect(results[0].DialectID + "/" + r.DialectID).
				Detail("linear memory exchange failed").
				Cause(err).
				Build()
		}
		Logger().Debug("memory exchange passed",
			zap.String("model", r.Model),
			zap.String("from", results[0].DialectID),
			zap.String("to", r.DialectID))
	}
	return nil
}
