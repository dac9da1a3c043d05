// Package pipeline runs generation for a set of result types.
//
// Each TypeModel goes through resolve, emit for every registered dialect,
// cross-dialect check and, unless the run is a dry run, an atomic write of
// each header. Models are processed concurrently by a bounded worker pool and
// share only the sealed dialect registry.
//
// Failures never abort sibling models. An unsupported payload affects only
// its (model, dialect) pair; a layout mismatch suppresses every file of that
// model. All failures are collected into the Report.
//
// # Usage
//
//	p, err := pipeline.New(dialect.DefaultRegistry(), pipeline.Config{OutputDir: "include"})
//	report, err := p.Run(ctx, models)
//	if err := report.Err(); err != nil {
//	    // at least one model failed
//	}
package pipeline
