package model

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/capigen/errors"
)

// FromWIT converts a WIT result type. Own and borrow handles become opaque
// pointers to the resource; nested results, strings, lists and compound
// types are rejected.
func FromWIT(r *wit.Result, opts ...Option) (TypeModel, error) {
	if r == nil {
		return TypeModel{}, errors.InvalidModel("", "nil result type")
	}

	ok, err := payloadFromWIT(r.OK)
	if err != nil {
		return TypeModel{}, err
	}
	errPayload, err := payloadFromWIT(r.Err)
	if err != nil {
		return TypeModel{}, err
	}

	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithErr(errPayload))
	all = append(all, opts...)
	return New(ok, all...)
}

// FromWITTypeDef converts a named WIT type definition whose kind is a result.
// The WIT name becomes the model name unless opts override it.
func FromWITTypeDef(td *wit.TypeDef, opts ...Option) (TypeModel, error) {
	if td == nil {
		return TypeModel{}, errors.InvalidModel("", "nil type definition")
	}
	r, ok := td.Kind.(*wit.Result)
	if !ok {
		return TypeModel{}, errors.InvalidModel(typeDefName(td), fmt.Sprintf("%T is not a result", td.Kind))
	}
	if td.Name != nil {
		opts = append([]Option{WithName(sanitize(*td.Name))}, opts...)
	}
	return FromWIT(r, opts...)
}

func payloadFromWIT(t wit.Type) (Payload, error) {
	switch typ := t.(type) {
	case nil:
		return Void, nil
	case wit.Bool:
		return Scalar(KindBool), nil
	case wit.U8:
		return Scalar(KindU8), nil
	case wit.S8:
		return Scalar(KindS8), nil
	case wit.U16:
		return Scalar(KindU16), nil
	case wit.S16:
		return Scalar(KindS16), nil
	case wit.U32:
		return Scalar(KindU32), nil
	case wit.S32:
		return Scalar(KindS32), nil
	case wit.U64:
		return Scalar(KindU64), nil
	case wit.S64:
		return Scalar(KindS64), nil
	case wit.F32:
		return Scalar(KindF32), nil
	case wit.F64:
		return Scalar(KindF64), nil
	case *wit.TypeDef:
		return payloadFromTypeDef(typ)
	default:
		return Payload{}, errors.InvalidModel("", fmt.Sprintf("payload type %T is not representable", t))
	}
}

func payloadFromTypeDef(td *wit.TypeDef) (Payload, error) {
	switch kind := td.Kind.(type) {
	case *wit.Result:
		return Payload{}, errors.InvalidModel(typeDefName(td), "nested result payloads are not allowed")
	case *wit.Own:
		return Pointer(resourceName(kind.Type, td)), nil
	case *wit.Borrow:
		return Pointer(resourceName(kind.Type, td)), nil
	case wit.Type:
		return payloadFromWIT(kind)
	default:
		return Payload{}, errors.InvalidModel(typeDefName(td), fmt.Sprintf("payload kind %T is not representable", td.Kind))
	}
}

func resourceName(res, handle *wit.TypeDef) string {
	if res != nil && res.Name != nil {
		return sanitize(*res.Name)
	}
	if handle.Name != nil {
		return sanitize(*handle.Name)
	}
	return ""
}

func typeDefName(td *wit.TypeDef) string {
	if td.Name != nil {
		return *td.Name
	}
	return ""
}

// sanitize maps WIT kebab-case names onto C identifiers.
func sanitize(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '-' || c == '.' || c == ':' || c == '/' || c == '@' {
			b[i] = '_'
		}
	}
	return string(b)
}
