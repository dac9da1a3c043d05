package pipeline

import (
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/wippyai/capigen/errors"
)

// Drift describes a header on disk that no longer matches what would be
// generated.
type Drift struct {
	Path    string
	Missing bool
	Diff    string // unified diff from disk to generated, empty when Missing
}

// DetectDrift compares the accepted emissions in report against the files in
// dir. Models that failed are skipped.
func DetectDrift(dir string, report *Report) ([]Drift, error) {
	var drifts []Drift
	for _, o := range report.Outcomes {
		for _, res := range o.Results {
			path := filepath.Join(dir, res.FileName)
			existing, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				drifts = append(drifts, Drift{Path: path, Missing: true})
				continue
			}
			if err != nil {
				return nil, errors.IO(errors.PhaseCheck, path, err)
			}
			if string(existing) == res.Text {
				continue
			}

			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(existing)),
				B:        difflib.SplitLines(res.Text),
				FromFile: path,
				ToFile:   path + " (generated)",
				Context:  3,
			})
			if err != nil {
				return nil, errors.Wrap(errors.PhaseCheck, errors.KindIO, err, "diff "+path)
			}
			drifts = append(drifts, Drift{Path: path, Diff: diff})
		}
	}
	return drifts, nil
}
