package abi

import "math"

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// DataModel fixes the width of pointer-sized C types and the in-record
// alignment of 64-bit scalars.
type DataModel struct {
	Name        string
	PointerSize uint32
	Align64     uint32 // alignment of int64_t, uint64_t and double inside a struct
}

var (
	LP64   = DataModel{Name: "lp64", PointerSize: 8, Align64: 8}
	ILP32  = DataModel{Name: "ilp32", PointerSize: 4, Align64: 4} // i386 System V
	Wasm32 = DataModel{Name: "wasm32", PointerSize: 4, Align64: 8}
)

// ParseDataModel accepts "lp64", "ilp32" (alias "i386") and "wasm32".
func ParseDataModel(s string) (DataModel, bool) {
	switch s {
	case "", "lp64":
		return LP64, true
	case "ilp32", "i386":
		return ILP32, true
	case "wasm32":
		return Wasm32, true
	}
	return DataModel{}, false
}
