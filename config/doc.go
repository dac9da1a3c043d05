// Package config loads generation manifests.
//
// A manifest is a TOML file listing the result types to generate, optional
// custom dialects, and run settings:
//
//	output_dir = "include"
//	data_model = "lp64"
//	workers    = 4
//
//	[[dialect]]
//	id             = "cpp17"
//	file_suffix    = ".hpp"
//	namespace_wrap = true
//	namespace      = "ffi"
//	guard          = "pragma"
//
//	[[result]]
//	ok = "f64"
//
//	[[result]]
//	ok     = "pointer"
//	target = "Foo"
//	err    = "u8"
//
// Payloads accept kind names ("f64"), C spellings ("double") or a pointer
// spelling ("Foo*"). All problems found in a manifest are reported together.
package config
