package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/wippyai/capigen/dialect"
	"github.com/wippyai/capigen/errors"
	"github.com/wippyai/capigen/internal/abi"
	"github.com/wippyai/capigen/model"
)

// DefaultFile is the manifest name looked up when none is given.
const DefaultFile = "capigen.toml"

type Manifest struct {
	OutputDir string   `toml:"output_dir"`
	DataModel string   `toml:"data_model"`
	Prefix    string   `toml:"prefix"`
	Workers   int      `toml:"workers"`
	Builtins  []string `toml:"builtins"` // nil selects every built-in dialect

	Dialects []DialectEntry `toml:"dialect"`
	Results  []ResultEntry  `toml:"result"`
}

type DialectEntry struct {
	ID            string   `toml:"id"`
	FileSuffix    string   `toml:"file_suffix"`
	Namespace     string   `toml:"namespace"`
	Guard         string   `toml:"guard"`
	Unsupported   []string `toml:"unsupported"`
	Indent        int      `toml:"indent"`
	NamespaceWrap bool     `toml:"namespace_wrap"`
	CommentEndif  bool     `toml:"comment_endif"`
	Spacious      bool     `toml:"spacious"`
}

type ResultEntry struct {
	Name      string `toml:"name"`
	OK        string `toml:"ok"`
	Target    string `toml:"target"`
	Err       string `toml:"err"`
	ErrTarget string `toml:"err_target"`

	// ErrorChannel defaults to true when omitted.
	ErrorChannel *bool `toml:"error_channel"`
}

func Default() *Manifest {
	return &Manifest{
		OutputDir: "include",
		DataModel: abi.LP64.Name,
		Prefix:    model.DefaultPrefix,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Load reads a manifest file over the defaults. Unknown keys are rejected.
func Load(path string) (*Manifest, error) {
	m := Default()
	md, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, errors.InvalidConfig("parse "+path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes manifest text over the defaults.
func Parse(text string) (*Manifest, error) {
	m := Default()
	md, err := toml.Decode(text, m)
	if err != nil {
		return nil, errors.InvalidConfig("parse manifest", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return m, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return errors.InvalidConfig("unknown keys: "+strings.Join(names, ", "), nil)
}

// ResolveDataModel returns the ABI the manifest targets.
func (m *Manifest) ResolveDataModel() (abi.DataModel, error) {
	dm, ok := abi.ParseDataModel(m.DataModel)
	if !ok {
		return abi.DataModel{}, errors.InvalidConfig(fmt.Sprintf("unknown data_model %q", m.DataModel), nil)
	}
	return dm, nil
}

// Registry builds and seals the dialect registry: the selected built-ins
// followed by custom dialects in manifest order.
func (m *Manifest) Registry() (*dialect.Registry, error) {
	builtins := dialect.Builtins()
	switch {
	case m.Builtins == nil:
	case len(m.Builtins) == 0:
		builtins = nil
	default:
		selected, err := dialect.DefaultRegistry().Select(m.Builtins...)
		if err != nil {
			return nil, errors.InvalidConfig("builtins", err)
		}
		builtins = selected
	}

	reg := dialect.NewRegistry()
	var errs error
	for _, d := range builtins {
		errs = multierr.Append(errs, reg.Register(d))
	}
	for i, e := range m.Dialects {
		d, err := e.dialect()
		if err == nil {
			err = reg.Register(d)
		}
		if err != nil {
			errs = multierr.Append(errs, errors.InvalidConfig(fmt.Sprintf("dialect[%d]", i), err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	if reg.Len() == 0 {
		return nil, errors.InvalidConfig("no dialects selected", nil)
	}
	reg.Seal()
	return reg, nil
}

func (e DialectEntry) dialect() (dialect.Dialect, error) {
	guard, ok := dialect.ParseGuardStyle(e.Guard)
	if !ok {
		return dialect.Dialect{}, errors.InvalidDialect(e.ID, "unknown guard style "+e.Guard)
	}
	d := dialect.Dialect{
		ID:            e.ID,
		FileSuffix:    e.FileSuffix,
		Namespace:     e.Namespace,
		Indent:        e.Indent,
		Guard:         guard,
		NamespaceWrap: e.NamespaceWrap,
		CommentEndif:  e.CommentEndif,
		Spacious:      e.Spacious,
	}
	if d.Indent == 0 {
		d.Indent = 4
	}
	for _, name := range e.Unsupported {
		k, ok := model.ParseKind(name)
		if !ok {
			return dialect.Dialect{}, errors.InvalidDialect(e.ID, "unknown kind "+name)
		}
		d.Unsupported = append(d.Unsupported, k)
	}
	return d, d.Validate()
}

// Models converts every [[result]] entry, collecting all failures.
func (m *Manifest) Models() ([]model.TypeModel, error) {
	out := make([]model.TypeModel, 0, len(m.Results))
	var errs error
	for i, r := range m.Results {
		tm, err := r.model(m.Prefix)
		if err != nil {
			errs = multierr.Append(errs, errors.InvalidConfig(fmt.Sprintf("result[%d]", i), err))
			continue
		}
		out = append(out, tm)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (r ResultEntry) model(prefix string) (model.TypeModel, error) {
	ok, err := parsePayload(r.OK, r.Target)
	if err != nil {
		return model.TypeModel{}, err
	}
	errPayload, err := parsePayload(r.Err, r.ErrTarget)
	if err != nil {
		return model.TypeModel{}, err
	}

	opts := []model.Option{model.WithPrefix(prefix), model.WithErr(errPayload)}
	if r.Name != "" {
		opts = append(opts, model.WithName(r.Name))
	}
	if r.ErrorChannel != nil && !*r.ErrorChannel {
		opts = append(opts, model.WithoutErrorChannel())
	}
	return model.New(ok, opts...)
}

func parsePayload(s, target string) (model.Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if target != "" {
			return model.Payload{}, errors.InvalidData(errors.PhaseConfig, "", "target "+target+" given without a pointer payload")
		}
		return model.Void, nil
	}
	if k, ok := model.ParseKind(s); ok {
		switch {
		case k == model.KindPointer && target == "":
			return model.Payload{}, errors.InvalidData(errors.PhaseConfig, "", "pointer payload needs a target")
		case k == model.KindPointer:
			return model.Pointer(target), nil
		case target != "":
			return model.Payload{}, errors.InvalidData(errors.PhaseConfig, "", "target given for "+s)
		}
		return model.Scalar(k), nil
	}
	if p, ok := model.ParseCType(s); ok && target == "" {
		return p, nil
	}
	return model.Payload{}, errors.InvalidData(errors.PhaseConfig, "", "unknown payload type "+s)
}
