// Package model defines the dialect-independent description of a fallible
// result type.
//
// A TypeModel pairs an ok payload with an error channel. Payloads come from a
// closed set of kinds: void, bool, fixed-width integers, size types, float,
// double and opaque pointers. A payload is never itself a result type.
//
// Models are usually built with New:
//
//	m, err := model.New(model.Scalar(model.KindF64))
//	// m.Name == "diplomat_result_double_void"
//
// or converted from a WIT result type with FromWIT.
package model
