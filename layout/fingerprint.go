package layout

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a structural hash over field order, names, kinds, widths,
// offsets and union membership. The type name and pointer targets are not
// part of it.
func Fingerprint(l Layout) uint64 {
	d := xxhash.New()
	var buf [4]byte

	u32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	u32(uint32(len(l.Fields)))
	for _, f := range l.Fields {
		_, _ = d.WriteString(f.Name)
		flags := byte(0)
		if f.InUnion {
			flags = 1
		}
		_, _ = d.Write([]byte{0, byte(f.Payload.Kind), flags})
		u32(f.Offset)
		u32(f.Size)
		u32(f.Align)
	}
	_, _ = d.Write([]byte{byte(l.Storage)})
	u32(l.Size)
	u32(l.Align)

	return d.Sum64()
}

// Diff describes the first structural difference between a and b, or ""
// when they agree.
func Diff(a, b Layout) string {
	if len(a.Fields) != len(b.Fields) {
		return fmt.Sprintf("field count %d != %d", len(a.Fields), len(b.Fields))
	}
	for i := range a.Fields {
		fa, fb := a.Fields[i], b.Fields[i]
		switch {
		case fa.Name != fb.Name:
			return fmt.Sprintf("field %d named %q != %q", i, fa.Name, fb.Name)
		case fa.Payload.Kind != fb.Payload.Kind:
			return fmt.Sprintf("field %s kind %s != %s", fa.Name, fa.Payload.Kind, fb.Payload.Kind)
		case fa.InUnion != fb.InUnion:
			return fmt.Sprintf("field %s union membership %t != %t", fa.Name, fa.InUnion, fb.InUnion)
		case fa.Offset != fb.Offset:
			return fmt.Sprintf("field %s offset %d != %d", fa.Name, fa.Offset, fb.Offset)
		case fa.Size != fb.Size || fa.Align != fb.Align:
			return fmt.Sprintf("field %s width %d/%d != %d/%d", fa.Name, fa.Size, fa.Align, fb.Size, fb.Align)
		}
	}
	if a.Size != b.Size || a.Align != b.Align {
		return fmt.Sprintf("record width %d/%d != %d/%d", a.Size, a.Align, b.Size, b.Align)
	}
	if a.Storage != b.Storage {
		return fmt.Sprintf("storage %s != %s", a.Storage, b.Storage)
	}
	return ""
}
