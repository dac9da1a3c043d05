// Package abi provides alignment and width helpers shared by the layout
// resolver and the linear memory probe.
//
// Widths follow the C data model chosen for a run: LP64 for 64-bit hosts,
// ILP32 for i386 where 64-bit scalars are only 4-byte aligned in records, and
// wasm32 which keeps 4-byte pointers but 8-byte alignment.
package abi
