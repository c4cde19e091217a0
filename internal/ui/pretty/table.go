package pretty

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Width classes shown in the widths table.
const (
	ClassOverride = "override"
	ClassCJK      = "cjk"
	ClassMark     = "cjk mark"
	ClassDefault  = "default"
)

// WidthRow is one row of the width table.
type WidthRow struct {
	Char  rune
	Width float64
	Class string
}

// FormatWidthTable renders the effective width table.
func (s *Styles) FormatWidthTable(rows []WidthRow) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			strconv.QuoteRune(row.Char),
			strconv.FormatFloat(row.Width, 'g', -1, 64),
			row.Class,
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers("CHAR", "WIDTH", "CLASS").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.TableHeader.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(rows) && rows[row].Class != ClassDefault && rows[row].Class != ClassOverride {
				return s.TableCJK.Padding(0, 1)
			}
			return cell
		})

	return tbl.String() + "\n"
}
