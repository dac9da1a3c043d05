package emit

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/capigen/dialect"
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/layout"
	"github.com/wippyai/capigen/model"
)

func resolve(t *testing.T, ok model.Payload, opts ...model.Option) layout.Layout {
	t.Helper()
	m, err := model.New(ok, opts...)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return layout.NewResolver(abi.LP64).Resolve(m)
}

func TestEmitMatchesGoldenHeaders(t *testing.T) {
	l := resolve(t, model.Scalar(model.KindF64))

	tests := []struct {
		d      dialect.Dialect
		golden string
	}{
		{dialect.CPP, "diplomat_result_double_void.h"},
		{dialect.CPP2, "diplomat_result_double_void.d.h"},
	}

	for _, tc := range tests {
		t.Run(tc.d.ID, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", tc.golden))
			if err != nil {
				t.Fatal(err)
			}
			res, err := Emit(l, tc.d)
			if err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if res.Text != string(want) {
				t.Errorf("text mismatch\n--- got ---\n%s\n--- want ---\n%s", res.Text, want)
			}
			if res.FileName != tc.golden {
				t.Errorf("FileName = %q, want %q", res.FileName, tc.golden)
			}
			if res.Fingerprint != layout.Fingerprint(l) {
				t.Error("fingerprint does not match the layout")
			}
		})
	}
}

func TestEmitVoidPayload(t *testing.T) {
	l := resolve(t, model.Void)

	for _, d := range dialect.Builtins() {
		t.Run(d.ID, func(t *testing.T) {
			res, err := Emit(l, d)
			if err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if strings.Contains(res.Text, "union") {
				t.Error("void result must not declare a union")
			}
			if !strings.Contains(res.Text, "bool is_ok;") {
				t.Error("missing discriminant")
			}
			decl, err := ParseRecord(res.Text)
			if err != nil {
				t.Fatalf("ParseRecord: %v", err)
			}
			if len(decl.Fields) != 1 || decl.Fields[0].Name != "is_ok" {
				t.Errorf("fields: %+v", decl.Fields)
			}
		})
	}
}

func TestEmitUnsupportedPointer(t *testing.T) {
	l := resolve(t, model.Pointer("Opaque"))

	res, err := Emit(l, dialect.C)
	if !errors.HasKind(err, errors.KindUnsupportedPayload) {
		t.Fatalf("expected unsupported_payload_type, got %v", err)
	}
	if res.Text != "" || res.FileName != "" {
		t.Error("failed emission must not return partial output")
	}

	res, err = Emit(l, dialect.CPP2)
	if err != nil {
		t.Fatalf("cpp2 should accept pointers: %v", err)
	}
	if !strings.Contains(res.Text, "typedef struct Opaque Opaque;") {
		t.Error("missing forward declaration for pointee")
	}
	if !strings.Contains(res.Text, "    Opaque* ok;") {
		t.Errorf("missing pointer field:\n%s", res.Text)
	}
}

func TestEmitIdempotent(t *testing.T) {
	layouts := []layout.Layout{
		resolve(t, model.Scalar(model.KindF64)),
		resolve(t, model.Void),
		resolve(t, model.Scalar(model.KindS32), model.WithErr(model.Scalar(model.KindU8))),
		resolve(t, model.Scalar(model.KindU16), model.WithoutErrorChannel()),
	}

	for _, l := range layouts {
		for _, d := range dialect.Builtins() {
			first, err := Emit(l, d)
			if err != nil {
				t.Fatalf("%s/%s: %v", l.Name, d.ID, err)
			}
			second, _ := Emit(l, d)
			if first != second {
				t.Errorf("%s/%s: re-emission differs", l.Name, d.ID)
			}
		}
	}
}

func TestEmitPlainCDialect(t *testing.T) {
	res, err := Emit(resolve(t, model.Scalar(model.KindF64)), dialect.C)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.Text, "extern") || strings.Contains(res.Text, "namespace") {
		t.Error("c dialect must not wrap")
	}
	if !strings.HasPrefix(res.Text, "#ifndef diplomat_result_double_void_C_H\n") {
		t.Errorf("unexpected guard:\n%s", res.Text)
	}
	if !strings.HasSuffix(res.Text, "} diplomat_result_double_void;\n#endif\n") {
		t.Errorf("unexpected tail:\n%s", res.Text)
	}
}

func TestEmitPragmaOnce(t *testing.T) {
	d := dialect.CPP2
	d.ID = "cpp2-pragma"
	d.Guard = dialect.GuardPragmaOnce

	res, err := Emit(resolve(t, model.Scalar(model.KindBool)), d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Text, "#pragma once\n\n#include <stdio.h>\n") {
		t.Errorf("unexpected head:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "#ifndef") || strings.HasSuffix(res.Text, "\n\n") {
		t.Errorf("unexpected guard or trailing blank:\n%s", res.Text)
	}
}

func TestEmitExternOnly(t *testing.T) {
	d := dialect.Dialect{ID: "extern", FileSuffix: ".e.h", Indent: 2, NamespaceWrap: true}
	res, err := Emit(resolve(t, model.Scalar(model.KindU8)), d)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.Text, "namespace") {
		t.Error("empty namespace must not be rendered")
	}
	if !strings.Contains(res.Text, "extern \"C\" {\n#endif\n") {
		t.Errorf("missing extern block:\n%s", res.Text)
	}
}

func TestRoundTrip(t *testing.T) {
	r := layout.NewResolver(abi.LP64)
	models := []model.TypeModel{}
	for _, spec := range []struct {
		ok   model.Payload
		opts []model.Option
	}{
		{model.Scalar(model.KindF64), nil},
		{model.Void, nil},
		{model.Pointer("Foo"), []model.Option{model.WithErr(model.Scalar(model.KindS64))}},
		{model.Scalar(model.KindUsize), []model.Option{model.WithoutErrorChannel()}},
		{model.Void, []model.Option{model.WithErr(model.Scalar(model.KindF32))}},
	} {
		m, err := model.New(spec.ok, spec.opts...)
		if err != nil {
			t.Fatal(err)
		}
		models = append(models, m)
	}

	for _, m := range models {
		want := r.Resolve(m)
		for _, d := range []dialect.Dialect{dialect.CPP, dialect.CPP2} {
			t.Run(m.Name+"/"+d.ID, func(t *testing.T) {
				res, err := Emit(want, d)
				if err != nil {
					t.Fatal(err)
				}
				got, err := Reparse(res.Text, r)
				if err != nil {
					t.Fatalf("Reparse: %v", err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
				}
			})
		}
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := map[string]string{
		"no record":    "#include <stdio.h>\n",
		"unterminated": "typedef struct x {\n  bool is_ok;\n",
		"nested union": "typedef struct x {\n union {\n union {\n",
		"stray close":  "typedef struct x {\n };\n",
		"wrong name":   "typedef struct x {\n bool is_ok;\n} y;\n",
		"missing semi": "typedef struct x {\n bool is_ok\n} x;\n",
		"malformed":    "typedef struct x {\n bool;\n} x;\n",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRecord(text); !errors.HasKind(err, errors.KindInvalidData) {
				t.Errorf("expected invalid_data, got %v", err)
			}
		})
	}

	decl, err := ParseRecord("typedef struct x {\n long double ok;\n bool is_ok;\n} x;\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := decl.Specs(); !errors.HasKind(err, errors.KindInvalidData) {
		t.Errorf("unknown C type should fail, got %v", err)
	}
}
