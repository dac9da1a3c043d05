package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/wippyai/capigen/pipeline"
)

type styles struct {
	good    lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	plain   lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

// newStyles colours output only when w is a terminal.
func newStyles(w io.Writer) styles {
	plain := lipgloss.NewStyle()
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		plain:   plain,
		added:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		removed: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (s styles) printReport(w io.Writer, report *pipeline.Report) {
	for _, o := range report.Outcomes {
		if o.Err == nil {
			fmt.Fprintf(w, "%s %s %s\n", s.good.Render("ok"), o.Model,
				s.muted.Render(fmt.Sprintf("(%d headers, %d written)", len(o.Results), o.Changed)))
			continue
		}
		fmt.Fprintf(w, "%s %s\n", s.bad.Render("FAIL"), o.Model)
		for _, err := range multierr.Errors(o.Err) {
			fmt.Fprintf(w, "    %s\n", err)
		}
	}

	failed := len(report.Failed())
	summary := fmt.Sprintf("%d result types, %d failed, %d files written",
		len(report.Outcomes), failed, report.Written())
	if failed > 0 {
		fmt.Fprintln(w, s.bad.Render(summary))
	} else {
		fmt.Fprintln(w, s.good.Render(summary))
	}
}

func (s styles) printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			fmt.Fprintln(w, s.header.Render(text))
		case strings.HasPrefix(text, "+"):
			fmt.Fprintln(w, s.added.Render(text))
		case strings.HasPrefix(text, "-"):
			fmt.Fprintln(w, s.removed.Render(text))
		default:
			fmt.Fprintln(w, text)
		}
	}
}
