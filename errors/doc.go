// Package errors provides structured error types for the header generator.
//
// Errors are categorized by Phase (which pipeline stage failed) and Kind
// (error category). The Error type carries the result type name and dialect
// involved so a run summary can attribute every failure.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindUnsupportedPayload).
//		Model("diplomat_result_Foo_ptr_void").
//		Dialect("c").
//		Detail("pointer payloads are not supported").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedPayload(model, dialect, "pointer")
//	err := errors.DuplicateDialect("cpp2")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
