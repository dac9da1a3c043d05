package pipeline

import (
	"go.uber.org/multierr"

	"github.com/wippyai/capigen/emit"
)

// Outcome is the result of processing one model.
type Outcome struct {
	Model       string
	Fingerprint uint64
	Results     []emit.Result // accepted emissions; empty when the check failed
	Files       []string      // paths of headers on disk after the run
	Changed     int           // files whose content was replaced
	Err         error
}

type Report struct {
	Outcomes []Outcome
}

func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Written counts files replaced on disk.
func (r *Report) Written() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Changed
	}
	return n
}

// Err combines every model failure, or returns nil if all succeeded.
func (r *Report) Err() error {
	var err error
	for _, o := range r.Outcomes {
		err = multierr.Append(err, o.Err)
	}
	return err
}
