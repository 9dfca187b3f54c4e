package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

// newTable returns a bordered table rendered for out. Rows for which accent
// reports true are highlighted; accent may be nil.
func newTable(out io.Writer, accent func(row int) bool, headers ...string) *table.Table {
	r := lipgloss.NewRenderer(out)
	header := r.NewStyle().Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	highlight := cell
	border := r.NewStyle()
	if !color.NoColor {
		header = header.Foreground(lipgloss.Color("86")).Bold(true)
		highlight = highlight.Foreground(lipgloss.Color("39"))
		border = border.Foreground(lipgloss.Color("238"))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case accent != nil && row >= 0 && accent(row):
				return highlight
			}
			return cell
		})
}
