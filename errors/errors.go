package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of generation produced the error
type Phase string

const (
	PhaseModel    Phase = "model"    // result type construction
	PhaseRegister Phase = "register" // dialect registration
	PhaseResolve  Phase = "resolve"  // layout resolution
	PhaseEmit     Phase = "emit"     // header rendering
	PhaseCheck    Phase = "check"    // cross-dialect consistency
	PhaseProbe    Phase = "probe"    // linear memory ABI probe
	PhaseWrite    Phase = "write"    // output file handling
	PhaseConfig   Phase = "config"   // manifest loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedPayload Kind = "unsupported_payload_type"
	KindLayoutMismatch     Kind = "layout_mismatch"
	KindDuplicateDialect   Kind = "duplicate_dialect"
	KindRegistrySealed     Kind = "registry_sealed"
	KindInvalidModel       Kind = "invalid_model"
	KindInvalidDialect     Kind = "invalid_dialect"
	KindInvalidConfig      Kind = "invalid_config"
	KindInvalidData        Kind = "invalid_data"
	KindNotFound           Kind = "not_found"
	KindIO                 Kind = "io"
	KindProbe              Kind = "probe"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Model   string
	Dialect string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Model != "" {
		b.WriteString(" model ")
		b.WriteString(e.Model)
	}
	if e.Dialect != "" {
		b.WriteString(" dialect ")
		b.WriteString(e.Dialect)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// HasKind reports whether any *Error in err's tree has the given kind.
// Cause chains and joined errors (multierr, errors.Join) are searched.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Kind == kind {
				return true
			}
			err = e.Cause
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				if HasKind(inner, kind) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		default:
			return false
		}
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Model sets the result type name
func (b *Builder) Model(name string) *Builder {
	b.err.Model = name
	return b
}

// Dialect sets the dialect identifier
func (b *Builder) Dialect(id string) *Builder {
	b.err.Dialect = id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedPayload reports a payload kind the dialect cannot represent
func UnsupportedPayload(model, dialect, payload string) *Error {
	return &Error{
		Phase:   PhaseEmit,
		Kind:    KindUnsupportedPayload,
		Model:   model,
		Dialect: dialect,
		Detail:  fmt.Sprintf("payload type %s is not supported", payload),
		Value:   payload,
	}
}

// LayoutMismatch reports two renderings of one result type that disagree
func LayoutMismatch(model, dialectA, dialectB, detail string) *Error {
	return &Error{
		Phase:   PhaseCheck,
		Kind:    KindLayoutMismatch,
		Model:   model,
		Dialect: dialectA + "/" + dialectB,
		Detail:  detail,
	}
}

// DuplicateDialect reports a second registration under the same id
func DuplicateDialect(id string) *Error {
	return &Error{
		Phase:   PhaseRegister,
		Kind:    KindDuplicateDialect,
		Dialect: id,
		Detail:  fmt.Sprintf("dialect %q already registered", id),
	}
}

// RegistrySealed reports a registration attempted after the registry was sealed
func RegistrySealed(id string) *Error {
	return &Error{
		Phase:   PhaseRegister,
		Kind:    KindRegistrySealed,
		Dialect: id,
		Detail:  "registry is sealed",
	}
}

// InvalidDialect reports a dialect definition that cannot be used
func InvalidDialect(id, detail string) *Error {
	return &Error{
		Phase:   PhaseRegister,
		Kind:    KindInvalidDialect,
		Dialect: id,
		Detail:  detail,
	}
}

// InvalidModel reports a result type that cannot be constructed
func InvalidModel(model, detail string) *Error {
	return &Error{
		Phase:  PhaseModel,
		Kind:   KindInvalidModel,
		Model:  model,
		Detail: detail,
	}
}

// InvalidConfig reports a manifest problem
func InvalidConfig(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidData reports text that could not be parsed back
func InvalidData(phase Phase, model, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Model:  model,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// IO wraps a filesystem failure for path
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: path,
		Cause:  cause,
	}
}

// Probe reports a linear memory probe failure
func Probe(model, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseProbe,
		Kind:   KindProbe,
		Model:  model,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
