package emit

import (
	"strings"

	"github.com/wippyai/capigen/dialect"
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/layout"
	"github.com/wippyai/capigen/model"
)

// RuntimeHeader is referenced by every header but never generated here.
const RuntimeHeader = "diplomat_runtime.h"

// SystemIncludes is the fixed, dialect-independent include list.
var SystemIncludes = []string{"stdio.h", "stdint.h", "stddef.h", "stdbool.h"}

// Result is one rendered header.
type Result struct {
	Model       string
	DialectID   string
	FileName    string
	Text        string
	Fingerprint uint64
}

// Emit renders l in dialect d. If any field kind is unsupported by d it
// returns an unsupported_payload_type error and no text.
func Emit(l layout.Layout, d dialect.Dialect) (Result, error) {
	for _, f := range l.Fields {
		if !d.Supports(f.Payload.Kind) {
			return Result{}, errors.UnsupportedPayload(l.Name, d.ID, f.Payload.String())
		}
	}

	w := &writer{indent: strings.Repeat(" ", d.Indent)}
	guard := d.GuardToken(l.Name)

	switch d.Guard {
	case dialect.GuardPragmaOnce:
		w.line("#pragma once")
	default:
		w.line("#ifndef " + guard)
		w.line("#define " + guard)
	}
	if d.Spacious {
		w.blank()
	}

	for _, inc := range SystemIncludes {
		w.line("#include <" + inc + ">")
	}
	w.line(`#include "` + RuntimeHeader + `"`)
	w.blank()

	if d.NamespaceWrap {
		w.line("#ifdef __cplusplus")
		if d.Namespace != "" {
			w.line("namespace " + d.Namespace + " {")
		}
		w.line(`extern "C" {`)
		w.line(endif(d, "__cplusplus"))
		if d.Spacious {
			w.blank()
			w.blank()
		}
	}

	writeRecord(w, l)

	if d.Spacious {
		w.blank()
	}

	if d.NamespaceWrap {
		w.line("#ifdef __cplusplus")
		w.line(`} // extern "C"`)
		if d.Namespace != "" {
			w.line("} // namespace " + d.Namespace)
		}
		w.line(endif(d, "__cplusplus"))
		if d.Spacious {
			w.blank()
		}
	}

	if d.Guard == dialect.GuardIfndef {
		w.line(endif(d, guard))
	}

	return Result{
		Model:       l.Name,
		DialectID:   d.ID,
		FileName:    d.FileName(l.Name),
		Text:        w.String(),
		Fingerprint: layout.Fingerprint(l),
	}, nil
}

func writeRecord(w *writer, l layout.Layout) {
	seen := make(map[string]bool)
	for _, f := range l.Fields {
		if f.Payload.Kind == model.KindPointer && !seen[f.Payload.Target] {
			seen[f.Payload.Target] = true
			w.line("typedef struct " + f.Payload.Target + " " + f.Payload.Target + ";")
		}
	}

	w.line("typedef struct " + l.Name + " {")
	inUnion := false
	for _, f := range l.Fields {
		if f.InUnion && !inUnion {
			w.line(w.indent + "union {")
			inUnion = true
		}
		if !f.InUnion && inUnion {
			w.line(w.indent + "};")
			inUnion = false
		}
		depth := w.indent
		if f.InUnion {
			depth += w.indent
		}
		w.line(depth + f.Payload.CType() + " " + f.Name + ";")
	}
	if inUnion {
		w.line(w.indent + "};")
	}
	w.line("} " + l.Name + ";")
}

func endif(d dialect.Dialect, token string) string {
	if d.CommentEndif {
		return "#endif // " + token
	}
	return "#endif"
}

type writer struct {
	b      strings.Builder
	indent string
}

func (w *writer) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) blank() {
	w.b.WriteByte('\n')
}

// String returns the text without trailing blank lines.
func (w *writer) String() string {
	s := w.b.String()
	for strings.HasSuffix(s, "\n\n") {
		s = s[:len(s)-1]
	}
	return s
}
