package emit

import (
	"bufio"
	"strings"

	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/layout"
	"github.com/wippyai/capigen/model"
)

// DeclField is a field as written in a record declaration.
type DeclField struct {
	Name    string
	CType   string
	InUnion bool
}

// Decl is the structural content of one emitted record.
type Decl struct {
	Name   string
	Fields []DeclField
}

// ParseRecord extracts the first non-forward record declaration from text.
// Only the shapes Emit produces are understood.
func ParseRecord(text string) (Decl, error) {
	var decl Decl
	inRecord, inUnion, closed := false, false, false

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() && !closed {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if !inRecord {
			rest, ok := strings.CutPrefix(line, "typedef struct ")
			if !ok {
				continue
			}
			name, ok := strings.CutSuffix(rest, " {")
			if !ok {
				continue // forward declaration
			}
			decl.Name = strings.TrimSpace(name)
			inRecord = true
			continue
		}

		switch {
		case line == "union {":
			if inUnion {
				return Decl{}, errors.InvalidData(errors.PhaseCheck, decl.Name, "nested union")
			}
			inUnion = true
		case line == "};":
			if !inUnion {
				return Decl{}, errors.InvalidData(errors.PhaseCheck, decl.Name, "unbalanced union close")
			}
			inUnion = false
		case strings.HasPrefix(line, "}"):
			name := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "}")), ";")
			if name != decl.Name {
				return Decl{}, errors.InvalidData(errors.PhaseCheck, decl.Name, "record closed as "+name)
			}
			closed = true
		default:
			f, err := parseField(line)
			if err != nil {
				return Decl{}, errors.InvalidData(errors.PhaseCheck, decl.Name, err.Error())
			}
			f.InUnion = inUnion
			decl.Fields = append(decl.Fields, f)
		}
	}

	if !inRecord {
		return Decl{}, errors.InvalidData(errors.PhaseCheck, "", "no record declaration")
	}
	if !closed {
		return Decl{}, errors.InvalidData(errors.PhaseCheck, decl.Name, "unterminated record")
	}
	return decl, nil
}

func parseField(line string) (DeclField, error) {
	body, ok := strings.CutSuffix(line, ";")
	if !ok {
		return DeclField{}, errors.InvalidData(errors.PhaseCheck, "", "field without ';': "+line)
	}
	i := strings.LastIndexAny(body, " *")
	if i <= 0 || i == len(body)-1 {
		return DeclField{}, errors.InvalidData(errors.PhaseCheck, "", "malformed field: "+line)
	}
	return DeclField{
		CType: strings.TrimSpace(body[:i+1]),
		Name:  body[i+1:],
	}, nil
}

// Specs converts the declaration into layout field specs.
func (d Decl) Specs() ([]layout.FieldSpec, error) {
	specs := make([]layout.FieldSpec, 0, len(d.Fields))
	for _, f := range d.Fields {
		p, ok := model.ParseCType(f.CType)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseCheck, d.Name, "unknown C type "+f.CType)
		}
		specs = append(specs, layout.FieldSpec{Name: f.Name, Payload: p, InUnion: f.InUnion})
	}
	return specs, nil
}

// Reparse recovers the layout described by emitted text.
func Reparse(text string, r *layout.Resolver) (layout.Layout, error) {
	decl, err := ParseRecord(text)
	if err != nil {
		return layout.Layout{}, err
	}
	specs, err := decl.Specs()
	if err != nil {
		return layout.Layout{}, err
	}
	return r.Assemble(decl.Name, specs)
}
