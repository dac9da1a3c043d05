package model

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/capigen/errors"
)

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		cname string
	}{
		{KindVoid, "void", "void"},
		{KindBool, "bool", "bool"},
		{KindU8, "u8", "uint8_t"},
		{KindS16, "s16", "int16_t"},
		{KindU32, "u32", "uint32_t"},
		{KindS64, "s64", "int64_t"},
		{KindUsize, "usize", "size_t"},
		{KindIsize, "isize", "intptr_t"},
		{KindF32, "f32", "float"},
		{KindF64, "f64", "double"},
		{KindPointer, "pointer", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
			if got := tc.kind.CName(); got != tc.cname {
				t.Errorf("CName() = %q, want %q", got, tc.cname)
			}
			if k, ok := ParseKind(tc.name); !ok || k != tc.kind {
				t.Errorf("ParseKind(%q) = %v, %v", tc.name, k, ok)
			}
			if tc.cname != "" {
				if k, ok := ParseKind(tc.cname); !ok || k != tc.kind {
					t.Errorf("ParseKind(%q) = %v, %v", tc.cname, k, ok)
				}
			}
		})
	}

	if Kind(200).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
	if _, ok := ParseKind("string"); ok {
		t.Error("string is not a payload kind")
	}
}

func TestKindClasses(t *testing.T) {
	if !KindF64.IsScalar() || !KindBool.IsScalar() {
		t.Error("f64 and bool are scalar")
	}
	if KindVoid.IsScalar() || KindPointer.IsScalar() || KindUsize.IsScalar() {
		t.Error("void, pointer and usize are not scalar")
	}
	for _, k := range []Kind{KindUsize, KindIsize, KindPointer} {
		if !k.PlatformSized() {
			t.Errorf("%s should be platform sized", k)
		}
	}
}

func TestNew_CanonicalName(t *testing.T) {
	tests := []struct {
		name string
		ok   Payload
		opts []Option
		want string
	}{
		{"double void", Scalar(KindF64), nil, "diplomat_result_double_void"},
		{"void void", Void, nil, "diplomat_result_void_void"},
		{"int with err", Scalar(KindS32), []Option{WithErr(Scalar(KindU8))}, "diplomat_result_int32_t_uint8_t"},
		{"pointer", Pointer("Foo"), nil, "diplomat_result_Foo_ptr_void"},
		{"pointer err", Scalar(KindU8), []Option{WithErr(Pointer("Bar"))}, "diplomat_result_uint8_t_Bar_ptr"},
		{"prefix", Scalar(KindBool), []Option{WithPrefix("icu4x_")}, "icu4x_result_bool_void"},
		{"explicit", Scalar(KindBool), []Option{WithName("MyResult")}, "MyResult"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.ok, tc.opts...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if m.Name != tc.want {
				t.Errorf("Name = %q, want %q", m.Name, tc.want)
			}
			if !m.HasErrorChannel {
				t.Error("error channel should default on")
			}
		})
	}
}

func TestCanonicalNameDistinguishesSignatures(t *testing.T) {
	models := []struct {
		ok   Payload
		opts []Option
		want string
	}{
		{Scalar(KindF64), nil, "diplomat_result_double_void"},
		{Scalar(KindF64), []Option{WithoutErrorChannel()}, "diplomat_result_double_void_noerr"},
		{Pointer("Double"), nil, "diplomat_result_Double_ptr_void"},
		{Void, []Option{WithoutErrorChannel()}, "diplomat_result_void_void_noerr"},
	}

	seen := make(map[string]bool)
	for _, tc := range models {
		m, err := New(tc.ok, tc.opts...)
		if err != nil {
			t.Fatalf("New(%v): %v", tc.ok, err)
		}
		if m.Name != tc.want {
			t.Errorf("Name = %q, want %q", m.Name, tc.want)
		}
		if seen[m.Name] {
			t.Errorf("name %q derived twice", m.Name)
		}
		seen[m.Name] = true
	}
}

func TestIsReserved(t *testing.T) {
	for _, s := range []string{"double", "int", "uint8_t", "bool", "size_t", "struct", "class", "namespace", "void"} {
		if !IsReserved(s) {
			t.Errorf("%q should be reserved", s)
		}
	}
	for _, s := range []string{"Foo", "Double", "blob", "int_t", "ok"} {
		if IsReserved(s) {
			t.Errorf("%q should not be reserved", s)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ok   Payload
		opts []Option
	}{
		{"unknown kind", Payload{Kind: Kind(99)}, nil},
		{"pointer without target", Payload{Kind: KindPointer}, nil},
		{"pointer bad target", Pointer("foo bar"), nil},
		{"target on scalar", Payload{Kind: KindU8, Target: "x"}, nil},
		{"err without channel", Scalar(KindU8), []Option{WithErr(Scalar(KindU8)), WithoutErrorChannel()}},
		{"bad name", Scalar(KindU8), []Option{WithName("9lives")}},
		{"pointer to scalar type name", Pointer("double"), nil},
		{"pointer to stdint name", Pointer("uint8_t"), nil},
		{"pointer to keyword", Pointer("struct"), nil},
		{"pointer to c++ keyword", Pointer("class"), nil},
		{"err pointer to bool", Scalar(KindU8), []Option{WithErr(Pointer("bool"))}},
		{"keyword name", Scalar(KindU8), []Option{WithName("int")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.ok, tc.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasKind(err, errors.KindInvalidModel) {
				t.Errorf("expected invalid_model, got %v", err)
			}
		})
	}
}

func TestParseCType(t *testing.T) {
	for _, p := range []Payload{Scalar(KindF64), Scalar(KindUsize), Pointer("Opaque"), Void} {
		got, ok := ParseCType(p.CType())
		if !ok {
			t.Errorf("ParseCType(%q) failed", p.CType())
			continue
		}
		if got != p {
			t.Errorf("ParseCType(%q) = %v, want %v", p.CType(), got, p)
		}
	}
	if got, ok := ParseCType("Foo *"); !ok || got != Pointer("Foo") {
		t.Errorf("spaced pointer: %v %v", got, ok)
	}
	if _, ok := ParseCType("double*"); ok {
		t.Error("pointer to a built-in type should not parse")
	}
	if _, ok := ParseCType("long double"); ok {
		t.Error("long double should not parse")
	}
}

func TestFromWIT(t *testing.T) {
	name := "blob"
	resource := &wit.TypeDef{Name: &name, Kind: &wit.Resource{}}

	tests := []struct {
		name   string
		result *wit.Result
		want   string
		ok     Payload
		err    Payload
	}{
		{"f64", &wit.Result{OK: wit.F64{}}, "diplomat_result_double_void", Scalar(KindF64), Void},
		{"empty", &wit.Result{}, "diplomat_result_void_void", Void, Void},
		{"u32 err", &wit.Result{OK: wit.U32{}, Err: wit.S8{}}, "diplomat_result_uint32_t_int8_t", Scalar(KindU32), Scalar(KindS8)},
		{"own", &wit.Result{OK: &wit.TypeDef{Kind: &wit.Own{Type: resource}}}, "diplomat_result_blob_ptr_void", Pointer("blob"), Void},
		{"alias", &wit.Result{OK: &wit.TypeDef{Kind: wit.Bool{}}}, "diplomat_result_bool_void", Scalar(KindBool), Void},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := FromWIT(tc.result)
			if err != nil {
				t.Fatalf("FromWIT: %v", err)
			}
			if m.Name != tc.want {
				t.Errorf("Name = %q, want %q", m.Name, tc.want)
			}
			if m.OK != tc.ok || m.Err != tc.err {
				t.Errorf("payloads = %v/%v, want %v/%v", m.OK, m.Err, tc.ok, tc.err)
			}
		})
	}
}

func TestFromWIT_Rejects(t *testing.T) {
	nested := &wit.TypeDef{Kind: &wit.Result{OK: wit.U8{}}}

	tests := []struct {
		name   string
		result *wit.Result
	}{
		{"nested result", &wit.Result{OK: nested}},
		{"string", &wit.Result{OK: wit.String{}}},
		{"char", &wit.Result{Err: wit.Char{}}},
		{"list", &wit.Result{OK: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}}},
		{"anonymous handle", &wit.Result{OK: &wit.TypeDef{Kind: &wit.Own{}}}},
		{"nil", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromWIT(tc.result); !errors.HasKind(err, errors.KindInvalidModel) {
				t.Errorf("expected invalid_model, got %v", err)
			}
		})
	}
}

func TestFromWITTypeDef(t *testing.T) {
	name := "parse-result"
	td := &wit.TypeDef{Name: &name, Kind: &wit.Result{OK: wit.F64{}}}

	m, err := FromWITTypeDef(td)
	if err != nil {
		t.Fatalf("FromWITTypeDef: %v", err)
	}
	if m.Name != "parse_result" {
		t.Errorf("Name = %q, want parse_result", m.Name)
	}

	if _, err := FromWITTypeDef(&wit.TypeDef{Kind: &wit.Enum{}}); err == nil {
		t.Error("non-result typedef should fail")
	}
}
