package model

type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindUsize
	KindIsize
	KindF32
	KindF64
	KindPointer
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBool:    "bool",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindUsize:   "usize",
	KindIsize:   "isize",
	KindF32:     "f32",
	KindF64:     "f64",
	KindPointer: "pointer",
}

// C spellings. Pointers are spelled from their target.
var cNames = [...]string{
	KindVoid:  "void",
	KindBool:  "bool",
	KindU8:    "uint8_t",
	KindS8:    "int8_t",
	KindU16:   "uint16_t",
	KindS16:   "int16_t",
	KindU32:   "uint32_t",
	KindS32:   "int32_t",
	KindU64:   "uint64_t",
	KindS64:   "int64_t",
	KindUsize: "size_t",
	KindIsize: "intptr_t",
	KindF32:   "float",
	KindF64:   "double",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the closed set of payload kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsScalar reports whether k has a fixed width on every data model.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindS64 || k == KindF32 || k == KindF64
}

// PlatformSized reports whether k's width depends on the pointer size.
func (k Kind) PlatformSized() bool {
	return k == KindUsize || k == KindIsize || k == KindPointer
}

// CName returns the C spelling of a non-pointer kind.
func (k Kind) CName() string {
	if int(k) < len(cNames) {
		return cNames[k]
	}
	return ""
}

// ParseKind accepts both the short kind names and the C spellings.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	for i, name := range cNames {
		if name != "" && name == s {
			return Kind(i), true
		}
	}
	switch s {
	case "ptr", "opaque", "box":
		return KindPointer, true
	}
	return 0, false
}
