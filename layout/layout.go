package layout

import (
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/model"
)

// Field names are fixed here and nowhere else.
const (
	PayloadName      = "ok"
	ErrName          = "err"
	DiscriminantName = "is_ok"
)

type Storage uint8

const (
	StorageRecord Storage = iota // payload, if any, is a plain field
	StorageUnion                 // payload arms share an anonymous union
)

func (s Storage) String() string {
	if s == StorageUnion {
		return "union"
	}
	return "record"
}

// Field is a declared field with its resolved placement.
type Field struct {
	Name    string
	Payload model.Payload
	Offset  uint32
	Size    uint32
	Align   uint32
	InUnion bool
}

// Layout is the binary arrangement every dialect must agree on.
type Layout struct {
	Name      string
	DataModel string
	Fields    []Field
	Size      uint32
	Align     uint32
	Storage   Storage
}

// Discriminant returns the trailing is_ok field.
func (l Layout) Discriminant() Field {
	return l.Fields[len(l.Fields)-1]
}

// Field looks up a field by name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UnionArms returns the fields inside the anonymous union in declared order.
func (l Layout) UnionArms() []Field {
	var arms []Field
	for _, f := range l.Fields {
		if f.InUnion {
			arms = append(arms, f)
		}
	}
	return arms
}

// FieldSpec is a declared field before placement.
type FieldSpec struct {
	Name    string
	Payload model.Payload
	InUnion bool
}

// Specs lists the declared fields of m in order.
func Specs(m model.TypeModel) []FieldSpec {
	specs := make([]FieldSpec, 0, 3)
	if !m.OK.IsVoid() {
		specs = append(specs, FieldSpec{Name: PayloadName, Payload: m.OK, InUnion: m.HasErrorChannel})
	}
	if !m.Err.IsVoid() {
		specs = append(specs, FieldSpec{Name: ErrName, Payload: m.Err, InUnion: true})
	}
	specs = append(specs, FieldSpec{Name: DiscriminantName, Payload: model.Scalar(model.KindBool)})
	return specs
}

type Resolver struct {
	dm abi.DataModel
}

func NewResolver(dm abi.DataModel) *Resolver {
	return &Resolver{dm: dm}
}

func (r *Resolver) DataModel() abi.DataModel {
	return r.dm
}

// Resolve computes the layout of a validated model. It is total: every valid
// model yields the field list Specs produces, which Assemble always accepts.
func (r *Resolver) Resolve(m model.TypeModel) Layout {
	l, err := r.Assemble(m.Name, Specs(m))
	if err != nil {
		// unreachable for models that passed Validate
		panic(err)
	}
	return l
}

// Assemble places an explicit field list. It is used both by Resolve and to
// rebuild a layout from a parsed declaration.
func (r *Resolver) Assemble(name string, specs []FieldSpec) (Layout, error) {
	if err := checkShape(name, specs); err != nil {
		return Layout{}, err
	}

	l := Layout{
		Name:      name,
		DataModel: r.dm.Name,
		Fields:    make([]Field, 0, len(specs)),
		Align:     1,
	}

	offset := uint32(0)
	for i := 0; i < len(specs); {
		if !specs[i].InUnion {
			size, align := r.Width(specs[i].Payload)
			offset = abi.AlignTo(offset, align)
			l.Fields = append(l.Fields, Field{
				Name:    specs[i].Name,
				Payload: specs[i].Payload,
				Offset:  offset,
				Size:    size,
				Align:   align,
			})
			offset += size
			l.Align = max(l.Align, align)
			i++
			continue
		}

		// anonymous union: consecutive arms share one offset
		j := i
		unionSize, unionAlign := uint32(0), uint32(1)
		for ; j < len(specs) && specs[j].InUnion; j++ {
			size, align := r.Width(specs[j].Payload)
			unionSize = max(unionSize, size)
			unionAlign = max(unionAlign, align)
		}
		offset = abi.AlignTo(offset, unionAlign)
		for k := i; k < j; k++ {
			size, align := r.Width(specs[k].Payload)
			l.Fields = append(l.Fields, Field{
				Name:    specs[k].Name,
				Payload: specs[k].Payload,
				Offset:  offset,
				Size:    size,
				Align:   align,
				InUnion: true,
			})
		}
		offset += abi.AlignTo(unionSize, unionAlign)
		l.Align = max(l.Align, unionAlign)
		l.Storage = StorageUnion
		i = j
	}

	l.Size = abi.AlignTo(offset, l.Align)
	return l, nil
}

func checkShape(name string, specs []FieldSpec) error {
	if len(specs) == 0 {
		return errors.InvalidData(errors.PhaseResolve, name, "no fields")
	}
	last := specs[len(specs)-1]
	if last.Name != DiscriminantName || last.InUnion || last.Payload.Kind != model.KindBool {
		return errors.InvalidData(errors.PhaseResolve, name, "last field must be bool "+DiscriminantName)
	}

	seen := make(map[string]bool, len(specs))
	unionRuns := 0
	for i, s := range specs {
		if seen[s.Name] {
			return errors.InvalidData(errors.PhaseResolve, name, "duplicate field "+s.Name)
		}
		seen[s.Name] = true
		if s.Payload.IsVoid() {
			return errors.InvalidData(errors.PhaseResolve, name, "void field "+s.Name)
		}
		if s.InUnion && (i == 0 || !specs[i-1].InUnion) {
			unionRuns++
		}
	}
	if unionRuns > 1 {
		return errors.InvalidData(errors.PhaseResolve, name, "more than one union")
	}
	return nil
}

// Width returns the C size and alignment of a payload under the data model.
func (r *Resolver) Width(p model.Payload) (size, align uint32) {
	switch p.Kind {
	case model.KindBool, model.KindU8, model.KindS8:
		return 1, 1
	case model.KindU16, model.KindS16:
		return 2, 2
	case model.KindU32, model.KindS32, model.KindF32:
		return 4, 4
	case model.KindU64, model.KindS64, model.KindF64:
		if r.dm.Align64 == 0 {
			return 8, 8
		}
		return 8, r.dm.Align64
	case model.KindUsize, model.KindIsize, model.KindPointer:
		return r.dm.PointerSize, r.dm.PointerSize
	default:
		return 0, 1
	}
}
