package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/wippyai/capigen/pipeline"
)

const listWidth = 44

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	listStyle = lipgloss.NewStyle().
			Width(listWidth).
			PaddingRight(2)
)

func newBrowseCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "browse [ok[:err]...]",
		Short: "Inspect rendered headers interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			load := func() (*pipeline.Report, error) {
				_, report, err := execute(ctx, g, f, args, true)
				return report, err
			}
			p := tea.NewProgram(newBrowseModel(load), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := p.Run()
			return err
		},
	}
	f.register(cmd)
	return cmd
}

type browseModel struct {
	err      error
	report   *pipeline.Report
	load     func() (*pipeline.Report, error)
	viewport viewport.Model
	selected int
	dialect  int
	ready    bool
}

type reportMsg struct {
	err    error
	report *pipeline.Report
}

func newBrowseModel(load func() (*pipeline.Report, error)) *browseModel {
	return &browseModel{load: load}
}

func (m *browseModel) Init() tea.Cmd {
	return func() tea.Msg {
		report, err := m.load()
		return reportMsg{report: report, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.dialect = 0
				m.refresh()
			}
			return m, nil

		case "down", "j":
			if m.report != nil && m.selected < len(m.report.Outcomes)-1 {
				m.selected++
				m.dialect = 0
				m.refresh()
			}
			return m, nil

		case "tab", "right", "l":
			if n := m.dialectCount(); n > 0 {
				m.dialect = (m.dialect + 1) % n
				m.refresh()
			}
			return m, nil

		case "shift+tab", "left", "h":
			if n := m.dialectCount(); n > 0 {
				m.dialect = (m.dialect + n - 1) % n
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		width := max(msg.Width-listWidth, 20)
		height := max(msg.Height-4, 5)
		if !m.ready {
			m.viewport = viewport.New(width, height)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = height
		}
		m.refresh()

	case reportMsg:
		m.report = msg.report
		m.err = msg.err
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browseModel) dialectCount() int {
	if m.report == nil || len(m.report.Outcomes) == 0 {
		return 0
	}
	return len(m.report.Outcomes[m.selected].Results)
}

func (m *browseModel) refresh() {
	if !m.ready || m.report == nil || len(m.report.Outcomes) == 0 {
		return
	}
	o := m.report.Outcomes[m.selected]

	var b strings.Builder
	if o.Err != nil {
		for _, err := range multierr.Errors(o.Err) {
			b.WriteString(errorStyle.Render(err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(o.Results) > 0 {
		res := o.Results[m.dialect]
		b.WriteString(fileStyle.Render(fmt.Sprintf("%s  [%s]  %016x", res.FileName, res.DialectID, res.Fingerprint)))
		b.WriteString("\n\n")
		b.WriteString(res.Text)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.report == nil || !m.ready {
		return "Rendering headers..."
	}

	var list strings.Builder
	for i, o := range m.report.Outcomes {
		line := o.Model
		if o.Err != nil {
			line = errorStyle.Render("! ") + line
		} else {
			line = "  " + line
		}
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("capigen"))
	b.WriteString(fmt.Sprintf(" %d result types\n\n", len(m.report.Outcomes)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(list.String()), m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ result type • tab dialect • pgup/pgdn scroll • q quit"))
	return b.String()
}

var _ tea.Model = (*browseModel)(nil)
