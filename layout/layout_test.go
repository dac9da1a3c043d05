package layout

import (
	"reflect"
	"testing"

	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/model"
)

func mustModel(t *testing.T, ok model.Payload, opts ...model.Option) model.TypeModel {
	t.Helper()
	m, err := model.New(ok, opts...)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func TestWidths(t *testing.T) {
	lp64 := NewResolver(abi.LP64)
	wasm32 := NewResolver(abi.Wasm32)

	tests := []struct {
		payload model.Payload
		size64  uint32
		size32  uint32
	}{
		{model.Scalar(model.KindBool), 1, 1},
		{model.Scalar(model.KindS16), 2, 2},
		{model.Scalar(model.KindF32), 4, 4},
		{model.Scalar(model.KindF64), 8, 8},
		{model.Scalar(model.KindU64), 8, 8},
		{model.Scalar(model.KindUsize), 8, 4},
		{model.Pointer("Foo"), 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.payload.String(), func(t *testing.T) {
			size, align := lp64.Width(tc.payload)
			if size != tc.size64 || align != size {
				t.Errorf("lp64: got %d/%d, want %d", size, align, tc.size64)
			}
			size, align = wasm32.Width(tc.payload)
			if size != tc.size32 || align != size {
				t.Errorf("wasm32: got %d/%d, want %d", size, align, tc.size32)
			}
		})
	}
}

func TestResolveDoubleVoid(t *testing.T) {
	r := NewResolver(abi.LP64)
	l := r.Resolve(mustModel(t, model.Scalar(model.KindF64)))

	if l.Storage != StorageUnion {
		t.Errorf("storage: got %s, want union", l.Storage)
	}
	if len(l.Fields) != 2 {
		t.Fatalf("fields: got %d, want 2", len(l.Fields))
	}

	ok := l.Fields[0]
	if ok.Name != PayloadName || !ok.InUnion || ok.Offset != 0 || ok.Size != 8 {
		t.Errorf("ok field: %+v", ok)
	}
	disc := l.Discriminant()
	if disc.Name != DiscriminantName || disc.InUnion || disc.Offset != 8 || disc.Size != 1 {
		t.Errorf("discriminant: %+v", disc)
	}
	if l.Size != 16 || l.Align != 8 {
		t.Errorf("record: got %d/%d, want 16/8", l.Size, l.Align)
	}
}

func TestResolveVoidVoid(t *testing.T) {
	l := NewResolver(abi.LP64).Resolve(mustModel(t, model.Void))

	if len(l.Fields) != 1 {
		t.Fatalf("fields: got %d, want 1", len(l.Fields))
	}
	if l.Storage != StorageRecord {
		t.Errorf("storage: got %s, want record", l.Storage)
	}
	if len(l.UnionArms()) != 0 {
		t.Error("void result must not have union arms")
	}
	if l.Size != 1 || l.Align != 1 {
		t.Errorf("record: got %d/%d, want 1/1", l.Size, l.Align)
	}
}

func TestResolveErrorPayload(t *testing.T) {
	m := mustModel(t, model.Scalar(model.KindU8), model.WithErr(model.Scalar(model.KindU32)))
	l := NewResolver(abi.LP64).Resolve(m)

	arms := l.UnionArms()
	if len(arms) != 2 {
		t.Fatalf("union arms: got %d, want 2", len(arms))
	}
	if arms[0].Offset != 0 || arms[1].Offset != 0 {
		t.Error("union arms must share offset 0")
	}
	if arms[1].Name != ErrName {
		t.Errorf("second arm: got %s, want err", arms[1].Name)
	}
	if d := l.Discriminant(); d.Offset != 4 {
		t.Errorf("discriminant offset: got %d, want 4", d.Offset)
	}
	if l.Size != 8 || l.Align != 4 {
		t.Errorf("record: got %d/%d, want 8/4", l.Size, l.Align)
	}
}

func TestResolveWithoutErrorChannel(t *testing.T) {
	m := mustModel(t, model.Scalar(model.KindU16), model.WithoutErrorChannel())
	l := NewResolver(abi.LP64).Resolve(m)

	if l.Storage != StorageRecord {
		t.Errorf("storage: got %s, want record", l.Storage)
	}
	ok, found := l.Field(PayloadName)
	if !found || ok.InUnion {
		t.Errorf("ok should be a plain field: %+v", ok)
	}
	if l.Discriminant().Offset != 2 || l.Size != 4 {
		t.Errorf("layout: %+v", l)
	}
}

func TestResolveAlign64(t *testing.T) {
	m := mustModel(t, model.Scalar(model.KindF64))

	tests := []struct {
		dm     abi.DataModel
		size   uint32
		align  uint32
		discAt uint32
	}{
		{abi.LP64, 16, 8, 8},
		{abi.Wasm32, 16, 8, 8},
		{abi.ILP32, 12, 4, 8},
	}
	for _, tc := range tests {
		t.Run(tc.dm.Name, func(t *testing.T) {
			l := NewResolver(tc.dm).Resolve(m)
			if l.Size != tc.size || l.Align != tc.align || l.Discriminant().Offset != tc.discAt {
				t.Errorf("got size %d align %d is_ok@%d, want %d/%d/%d",
					l.Size, l.Align, l.Discriminant().Offset, tc.size, tc.align, tc.discAt)
			}
		})
	}

	// plain u64 then is_ok: the tail pads to 4 on i386, to 8 on wasm32
	plain := mustModel(t, model.Scalar(model.KindU64), model.WithoutErrorChannel())
	if got := NewResolver(abi.ILP32).Resolve(plain).Size; got != 12 {
		t.Errorf("i386 plain u64 record size = %d, want 12", got)
	}
	if got := NewResolver(abi.Wasm32).Resolve(plain).Size; got != 16 {
		t.Errorf("wasm32 plain u64 record size = %d, want 16", got)
	}
}

func TestResolvePointerDataModels(t *testing.T) {
	m := mustModel(t, model.Pointer("Opaque"))

	l64 := NewResolver(abi.LP64).Resolve(m)
	l32 := NewResolver(abi.ILP32).Resolve(m)

	if l64.Size != 16 || l32.Size != 8 {
		t.Errorf("sizes: lp64 %d, ilp32 %d", l64.Size, l32.Size)
	}
	if Fingerprint(l64) == Fingerprint(l32) {
		t.Error("data models with different widths must not share a fingerprint")
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(abi.LP64)
	payloads := []model.Payload{
		model.Void,
		model.Scalar(model.KindBool),
		model.Scalar(model.KindS32),
		model.Scalar(model.KindF64),
		model.Scalar(model.KindIsize),
		model.Pointer("Foo"),
	}

	for _, p := range payloads {
		t.Run(p.String(), func(t *testing.T) {
			a := r.Resolve(mustModel(t, p))
			b := r.Resolve(mustModel(t, p))
			if !reflect.DeepEqual(a, b) {
				t.Errorf("layouts differ:\n%+v\n%+v", a, b)
			}
			if Fingerprint(a) != Fingerprint(b) {
				t.Error("fingerprints differ")
			}
		})
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	r := NewResolver(abi.LP64)
	base := r.Resolve(mustModel(t, model.Scalar(model.KindF64)))

	fp := Fingerprint(base)
	seen := map[uint64]string{fp: "base"}

	variants := map[string]func(l *Layout){
		"kind": func(l *Layout) { l.Fields[0].Payload = model.Scalar(model.KindU64) },
		"union": func(l *Layout) {
			l.Fields[0].InUnion = false
		},
		"offset": func(l *Layout) { l.Fields[1].Offset = 12 },
		"name":   func(l *Layout) { l.Fields[1].Name = "ok_flag" },
		"size":   func(l *Layout) { l.Size = 24 },
	}

	for name, mutate := range variants {
		l := base
		l.Fields = append([]Field(nil), base.Fields...)
		mutate(&l)
		got := Fingerprint(l)
		if prev, dup := seen[got]; dup {
			t.Errorf("%s: fingerprint collides with %s", name, prev)
		}
		seen[got] = name
		if Diff(base, l) == "" {
			t.Errorf("%s: Diff reported no difference", name)
		}
	}

	renamed := base
	renamed.Name = "other"
	if Fingerprint(renamed) != fp {
		t.Error("type name must not affect the fingerprint")
	}
}

func TestAssembleRejects(t *testing.T) {
	r := NewResolver(abi.LP64)
	boolean := model.Scalar(model.KindBool)
	f64 := model.Scalar(model.KindF64)

	tests := []struct {
		name  string
		specs []FieldSpec
	}{
		{"empty", nil},
		{"no discriminant", []FieldSpec{{Name: PayloadName, Payload: f64}}},
		{"discriminant first", []FieldSpec{{Name: DiscriminantName, Payload: boolean}, {Name: PayloadName, Payload: f64}}},
		{"discriminant in union", []FieldSpec{{Name: DiscriminantName, Payload: boolean, InUnion: true}}},
		{"duplicate", []FieldSpec{{Name: PayloadName, Payload: f64}, {Name: PayloadName, Payload: f64}, {Name: DiscriminantName, Payload: boolean}}},
		{"void field", []FieldSpec{{Name: PayloadName, Payload: model.Void}, {Name: DiscriminantName, Payload: boolean}}},
		{"two unions", []FieldSpec{
			{Name: "a", Payload: f64, InUnion: true},
			{Name: "b", Payload: f64},
			{Name: "c", Payload: f64, InUnion: true},
			{Name: DiscriminantName, Payload: boolean},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Assemble("x", tc.specs)
			if !errors.HasKind(err, errors.KindInvalidData) {
				t.Errorf("expected invalid_data, got %v", err)
			}
		})
	}
}
