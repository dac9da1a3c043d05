package dialect

import (
	"slices"
	"strings"

	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/model"
)

type GuardStyle uint8

const (
	GuardIfndef     GuardStyle = iota // #ifndef/#define/#endif token pair
	GuardPragmaOnce                   // #pragma once
)

func (g GuardStyle) String() string {
	if g == GuardPragmaOnce {
		return "pragma"
	}
	return "ifndef"
}

func ParseGuardStyle(s string) (GuardStyle, bool) {
	switch s {
	case "", "ifndef":
		return GuardIfndef, true
	case "pragma", "pragma-once":
		return GuardPragmaOnce, true
	}
	return 0, false
}

// Dialect is one rendering convention for the shared layout.
type Dialect struct {
	ID          string
	FileSuffix  string
	Namespace   string       // empty wraps in extern "C" only
	Unsupported []model.Kind // payload kinds the dialect cannot express
	Indent      int
	Guard       GuardStyle

	NamespaceWrap bool
	CommentEndif  bool // "#endif // TOKEN" instead of "#endif"
	Spacious      bool // blank lines between sections
}

// Supports reports whether the dialect can express payload kind k.
func (d Dialect) Supports(k model.Kind) bool {
	if k == model.KindVoid {
		return true
	}
	return !slices.Contains(d.Unsupported, k)
}

// GuardToken derives the include guard from the type name and file suffix:
// "x" with ".d.h" becomes "x_D_H".
func (d Dialect) GuardToken(name string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(d.FileSuffix, ".", "_"))
	return name + suffix
}

func (d Dialect) FileName(name string) string {
	return name + d.FileSuffix
}

// Validate checks that the dialect can render anything at all.
func (d Dialect) Validate() error {
	if d.ID == "" {
		return errors.InvalidDialect("", "empty id")
	}
	if !strings.HasPrefix(d.FileSuffix, ".") || len(d.FileSuffix) < 2 {
		return errors.InvalidDialect(d.ID, "file suffix must start with '.'")
	}
	for i := 1; i < len(d.FileSuffix); i++ {
		c := d.FileSuffix[i]
		if c != '.' && c != '_' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return errors.InvalidDialect(d.ID, "file suffix contains "+string(c))
		}
	}
	if d.Indent < 1 || d.Indent > 8 {
		return errors.InvalidDialect(d.ID, "indent must be between 1 and 8")
	}
	if d.Namespace != "" && !d.NamespaceWrap {
		return errors.InvalidDialect(d.ID, "namespace set without namespace_wrap")
	}
	if d.Namespace != "" && (!isIdent(d.Namespace) || model.IsReserved(d.Namespace)) {
		return errors.InvalidDialect(d.ID, "namespace is not a usable identifier")
	}
	for _, k := range d.Unsupported {
		if !k.Valid() {
			return errors.InvalidDialect(d.ID, "unknown unsupported kind")
		}
	}
	return nil
}

func (d Dialect) clone() Dialect {
	d.Unsupported = slices.Clone(d.Unsupported)
	return d
}

// Built-in dialects. Builtins returns copies.
var (
	CPP = Dialect{
		ID:            "cpp",
		FileSuffix:    ".h",
		Namespace:     "capi",
		Indent:        4,
		NamespaceWrap: true,
	}
	CPP2 = Dialect{
		ID:            "cpp2",
		FileSuffix:    ".d.h",
		Namespace:     "capi",
		Indent:        2,
		NamespaceWrap: true,
		CommentEndif:  true,
		Spacious:      true,
	}
	C = Dialect{
		ID:          "c",
		FileSuffix:  ".c.h",
		Indent:      4,
		Unsupported: []model.Kind{model.KindPointer, model.KindUsize, model.KindIsize},
	}
)

func Builtins() []Dialect {
	return []Dialect{CPP.clone(), CPP2.clone(), C.clone()}
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
