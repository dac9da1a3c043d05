// Package dialect defines the textual rendering conventions for generated
// headers and the registry that holds them for a run.
//
// A Dialect controls only spelling: guard style, file suffix, indentation,
// optional namespace wrapping and which payload kinds it can express. It
// never influences the binary layout.
//
// Three dialects are built in:
//
//	cpp   .h    four-space indent, namespace capi, bare #endif
//	cpp2  .d.h  two-space indent, namespace capi, commented #endif
//	c     .c.h  plain C, scalar payloads only
//
// The registry is populated at startup and sealed before a run; after that it
// is read-only and safe to share between workers.
package dialect
