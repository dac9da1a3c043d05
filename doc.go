// Package capigen generates C headers for fallible result types.
//
// A result type is a value that is either a success payload or a failure.
// Each one is rendered as a tagged record: an anonymous union holding the
// payloads, followed by a one-byte is_ok discriminant. Every registered
// dialect renders the same record, and all renderings of one type must agree
// on field order, widths, union membership and the discriminant position.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	capigen/
//	├── model/          Result type descriptions and canonical naming, WIT import
//	├── dialect/        Header dialects and the write-once registry
//	├── layout/         Field placement, sizes and alignment, fingerprints
//	├── emit/           Header rendering and parsing rendered records back
//	├── check/          Cross-dialect layout consistency
//	├── probe/          Value exchange through wasm32 linear memory
//	├── pipeline/       Concurrent generation, atomic writes, drift detection
//	├── config/         TOML manifests
//	├── errors/         Structured error types
//	└── cmd/capigen/    Command line interface
//
// # Quick Start
//
// Render double/void for every built-in dialect:
//
//	m, err := model.New(model.Scalar(model.KindF64))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := layout.NewResolver(abi.LP64).Resolve(m)
//	for _, d := range dialect.Builtins() {
//	    res, err := emit.Emit(l, d)
//	    if err != nil {
//	        log.Fatal(err) // unsupported payload for this dialect
//	    }
//	    fmt.Println(res.FileName)
//	}
//
// Or drive a whole batch, including the consistency check and file output:
//
//	p, err := pipeline.New(dialect.DefaultRegistry(), pipeline.Config{OutputDir: "include"})
//	report, err := p.Run(ctx, models)
//
// # Record Shape
//
//	typedef struct diplomat_result_double_void {
//	    union {
//	        double ok;
//	    };
//	    bool is_ok;
//	} diplomat_result_double_void;
//
// A void success payload produces no union. An error payload becomes a
// second union arm named err. A type without an error channel carries its
// payload as a plain field.
package capigen
