// Package probe checks ABI compatibility of two layouts in real wasm32
// linear memory.
//
// A Probe instantiates a memory-only module in wazero, writes a distinct
// byte pattern for every field through one layout and reads each field back
// through the other. Any field that lands at a different place, or a record
// whose width differs, is reported. Layouts should be resolved with the
// wasm32 data model (abi.Wasm32).
package probe
