package model

// reserved holds spellings a generated identifier may not take: C and C++
// keywords plus the standard type names the emitted headers already use.
var reserved = map[string]bool{}

func init() {
	for _, words := range [][]string{
		// C
		{"auto", "break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "extern", "float", "for", "goto", "if",
			"inline", "int", "long", "register", "restrict", "return", "short",
			"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
			"unsigned", "void", "volatile", "while", "alignas", "alignof",
			"static_assert", "thread_local", "typeof", "nullptr", "true", "false",
			"_Alignas", "_Alignof", "_Atomic", "_Bool", "_Complex", "_Generic",
			"_Imaginary", "_Noreturn", "_Static_assert", "_Thread_local"},
		// C++
		{"and", "and_eq", "asm", "bitand", "bitor", "catch", "char8_t",
			"char16_t", "char32_t", "class", "compl", "concept", "consteval",
			"constexpr", "constinit", "const_cast", "co_await", "co_return",
			"co_yield", "decltype", "delete", "dynamic_cast", "explicit",
			"export", "friend", "mutable", "namespace", "new", "noexcept", "not",
			"not_eq", "operator", "or", "or_eq", "private", "protected", "public",
			"reinterpret_cast", "requires", "static_cast", "template", "this",
			"throw", "try", "typeid", "typename", "using", "virtual", "wchar_t",
			"xor", "xor_eq"},
		// stdint.h, stddef.h, stdbool.h
		{"intptr_t", "uintptr_t", "ptrdiff_t", "size_t", "ssize_t", "max_align_t",
			"intmax_t", "uintmax_t", "NULL", "FILE"},
	} {
		for _, w := range words {
			reserved[w] = true
		}
	}
	for _, name := range cNames {
		if name != "" {
			reserved[name] = true
		}
	}
}

// IsReserved reports whether s is a C or C++ keyword or a standard type name
// and therefore cannot name a generated type.
func IsReserved(s string) bool {
	return reserved[s]
}
