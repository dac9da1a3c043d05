package model

import (
	"strings"

	"github.com/wippyai/capigen/errors"
)

// DefaultPrefix is prepended to derived result type names.
const DefaultPrefix = "diplomat_"

// Payload is one arm of a result: a kind plus, for pointers, the name of
// the opaque pointee.
type Payload struct {
	Target string
	Kind   Kind
}

// Void is the absent payload.
var Void = Payload{Kind: KindVoid}

// Scalar returns a non-pointer payload of kind k.
func Scalar(k Kind) Payload {
	return Payload{Kind: k}
}

// Pointer returns an opaque pointer payload to target.
func Pointer(target string) Payload {
	return Payload{Kind: KindPointer, Target: target}
}

func (p Payload) IsVoid() bool {
	return p.Kind == KindVoid
}

// CType returns the C spelling used in a field declaration.
func (p Payload) CType() string {
	if p.Kind == KindPointer {
		return p.Target + "*"
	}
	return p.Kind.CName()
}

func (p Payload) String() string {
	if p.Kind == KindPointer {
		return "pointer<" + p.Target + ">"
	}
	return p.Kind.String()
}

// nameToken is the fragment this payload contributes to a derived name.
// Pointers carry a suffix so they never spell like a scalar.
func (p Payload) nameToken() string {
	if p.Kind == KindPointer {
		return p.Target + "_ptr"
	}
	return p.Kind.CName()
}

// ParseCType is the inverse of CType.
func ParseCType(s string) (Payload, bool) {
	s = strings.TrimSpace(s)
	if target, ok := strings.CutSuffix(s, "*"); ok {
		target = strings.TrimSpace(target)
		if !isIdent(target) || IsReserved(target) {
			return Payload{}, false
		}
		return Pointer(target), true
	}
	for i, name := range cNames {
		if name != "" && name == s {
			return Payload{Kind: Kind(i)}, true
		}
	}
	return Payload{}, false
}

// TypeModel describes one fallible result type independent of any dialect.
type TypeModel struct {
	Name            string
	OK              Payload
	Err             Payload
	HasErrorChannel bool
}

type options struct {
	name       string
	prefix     string
	err        Payload
	infallible bool
}

// Option configures New.
type Option func(*options)

// WithErr sets an error payload. Only valid with an error channel.
func WithErr(p Payload) Option {
	return func(o *options) { o.err = p }
}

// WithName overrides the derived canonical name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithPrefix changes the prefix of the derived name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithoutErrorChannel drops the error channel; the payload is then laid out
// as a plain field instead of a union arm.
func WithoutErrorChannel() Option {
	return func(o *options) { o.infallible = true }
}

// New builds a validated TypeModel.
func New(ok Payload, opts ...Option) (TypeModel, error) {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	m := TypeModel{
		OK:              ok,
		Err:             o.err,
		HasErrorChannel: !o.infallible,
		Name:            o.name,
	}
	if m.Name == "" {
		m.Name = CanonicalName(o.prefix, ok, o.err, m.HasErrorChannel)
	}
	if err := m.Validate(); err != nil {
		return TypeModel{}, err
	}
	return m, nil
}

// CanonicalName derives "<prefix>result_<ok>_<err>" with void for absent arms.
// Pointer arms read "<Target>_ptr", and a type without an error channel gets
// a trailing "_noerr".
func CanonicalName(prefix string, ok, err Payload, errorChannel bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("result_")
	b.WriteString(ok.nameToken())
	b.WriteByte('_')
	b.WriteString(err.nameToken())
	if !errorChannel {
		b.WriteString("_noerr")
	}
	return b.String()
}

// Validate checks the model invariants.
func (m TypeModel) Validate() error {
	if !isIdent(m.Name) {
		return errors.InvalidModel(m.Name, "name is not a C identifier")
	}
	if IsReserved(m.Name) {
		return errors.InvalidModel(m.Name, "name is a reserved word")
	}
	if err := validatePayload(m.Name, "ok", m.OK); err != nil {
		return err
	}
	if err := validatePayload(m.Name, "err", m.Err); err != nil {
		return err
	}
	if !m.HasErrorChannel && !m.Err.IsVoid() {
		return errors.InvalidModel(m.Name, "error payload requires an error channel")
	}
	return nil
}

func validatePayload(name, arm string, p Payload) error {
	if !p.Kind.Valid() {
		return errors.New(errors.PhaseModel, errors.KindInvalidModel).
			Model(name).
			Value(p.Kind).
			Detail("%s payload has unknown kind %d", arm, p.Kind).
			Build()
	}
	if p.Kind == KindPointer && !isIdent(p.Target) {
		return errors.New(errors.PhaseModel, errors.KindInvalidModel).
			Model(name).
			Value(p.Target).
			Detail("%s pointer target %q is not a C identifier", arm, p.Target).
			Build()
	}
	if p.Kind == KindPointer && IsReserved(p.Target) {
		return errors.New(errors.PhaseModel, errors.KindInvalidModel).
			Model(name).
			Value(p.Target).
			Detail("%s pointer target %q is a reserved word", arm, p.Target).
			Build()
	}
	if p.Kind != KindPointer && p.Target != "" {
		return errors.InvalidModel(name, arm+" payload has a target but is not a pointer")
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
