// Package check verifies that every dialect rendering of one result type
// describes the same binary layout.
//
// The checker does not trust recorded fingerprints: each emitted text is
// parsed back, placed again, and fingerprinted. It fails with
// layout_mismatch when a rendering disagrees with its own recorded
// fingerprint or with the first rendering of the batch. With a probe
// attached it additionally exchanges values between renderings in wasm32
// linear memory.
package check
