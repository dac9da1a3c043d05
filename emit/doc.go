// Package emit renders a resolved layout as a C header in one dialect and
// parses rendered records back into layouts.
//
// Emit is deterministic: the same layout and dialect always produce the same
// bytes. A header contains, in order, the include guard, the fixed include
// list ending with the runtime header, the optional extern "C" wrapper, the
// record declaration and the matching closers.
//
// Reparse is the inverse used by consistency checks: it recovers field order,
// C types and union membership from emitted text and places them again with
// a layout.Resolver.
package emit
