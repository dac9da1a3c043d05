package probe

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/layout"
)

// memoryWasm exports a single one-page memory.
var memoryWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

// base is the record address used for every probe; 16 satisfies any
// payload alignment.
const base = 16

type Probe struct {
	rt  wazero.Runtime
	mod api.Module
	mu  sync.Mutex
}

func New(ctx context.Context) (*Probe, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	mod, err := rt.Instantiate(ctx, memoryWasm)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Probe("", "instantiate memory module", err)
	}
	return &Probe{rt: rt, mod: mod}, nil
}

func (p *Probe) Close(ctx context.Context) error {
	return p.rt.Close(ctx)
}

// Compare writes every field of a and reads it back through b.
func (p *Probe) Compare(ctx context.Context, a, b layout.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.Size != b.Size {
		return errors.Probe(a.Name, fmt.Sprintf("record size %d != %d", a.Size, b.Size), nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	mem := p.mod.ExportedMemory("memory")
	if mem == nil {
		return errors.Probe(a.Name, "memory export missing", nil)
	}
	end, ok := abi.SafeAddU32(base, a.Size)
	if !ok || end > mem.Size() {
		return errors.Probe(a.Name, fmt.Sprintf("record of %d bytes does not fit", a.Size), nil)
	}

	if !mem.Write(base, make([]byte, a.Size)) {
		return errors.Probe(a.Name, "clear record", nil)
	}
	for i, f := range a.Fields {
		if !mem.Write(base+f.Offset, pattern(i, f.Size)) {
			return errors.Probe(a.Name, "write field "+f.Name, nil)
		}
	}

	for i, fa := range a.Fields {
		fb, found := b.Field(fa.Name)
		if !found {
			return errors.Probe(a.Name, "field "+fa.Name+" missing", nil)
		}
		if fb.Size != fa.Size {
			return errors.Probe(a.Name, fmt.Sprintf("field %s width %d != %d", fa.Name, fa.Size, fb.Size), nil)
		}
		// union arms overlap, so only the last written arm survives intact
		if fa.InUnion && !lastArm(a, i) {
			continue
		}
		got, ok := mem.Read(base+fb.Offset, fb.Size)
		if !ok {
			return errors.Probe(a.Name, "read field "+fa.Name, nil)
		}
		if !bytes.Equal(got, pattern(i, fa.Size)) {
			return errors.Probe(a.Name, fmt.Sprintf("field %s reads back %x", fa.Name, got), nil)
		}
	}
	return nil
}

func lastArm(l layout.Layout, i int) bool {
	return i+1 >= len(l.Fields) || !l.Fields[i+1].InUnion
}

// pattern fills a field with bytes unique to its index and position.
func pattern(field int, size uint32) []byte {
	buf := make([]byte, size)
	for j := range buf {
		buf[j] = byte(0x11*(field+1) + j)
	}
	return buf
}
