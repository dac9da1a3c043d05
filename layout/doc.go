// Package layout decides the binary layout of a fallible result type.
//
// The decision is made once per TypeModel and shared by every dialect that
// renders it. Layout rules:
//   - The payload arms live in an anonymous union iff the model has an
//     error channel; otherwise the ok payload is a plain field.
//   - A void payload contributes no field, and with no arms there is no union.
//   - The discriminant is a one-byte bool named is_ok that always follows
//     the payload.
//   - Offsets, size and alignment follow C rules for the chosen data model.
//
// # Usage
//
//	r := layout.NewResolver(abi.LP64)
//	l := r.Resolve(m)
//	fp := layout.Fingerprint(l)
//
// Fingerprint hashes field order, widths and union membership so renderings
// can be compared without comparing text.
package layout
