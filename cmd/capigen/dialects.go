package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newDialectsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the dialects a run would render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(g.config, nil)
			if err != nil {
				return err
			}
			reg, err := m.Registry()
			if err != nil {
				return err
			}

			st := newStyles(cmd.OutOrStdout())
			t := table.New().
				Headers("ID", "SUFFIX", "GUARD", "NAMESPACE", "INDENT", "UNSUPPORTED").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return st.header
					}
					return st.plain
				})

			for _, d := range reg.All() {
				ns := "-"
				if d.NamespaceWrap {
					ns = d.Namespace
					if ns == "" {
						ns = "extern \"C\""
					}
				}
				var unsupported []string
				for _, k := range d.Unsupported {
					unsupported = append(unsupported, k.String())
				}
				t.Row(d.ID, d.FileSuffix, d.Guard.String(), ns,
					fmt.Sprint(d.Indent), strings.Join(unsupported, ","))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
