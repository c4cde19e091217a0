package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// BatchRow is one file of a batch run.
type BatchRow struct {
	File       string
	Pages      int
	Lines      int
	WidestLine float64
	Err        error
}

// FormatBatchTable renders one row per file. Failed files show their error
// in the status column.
func (s *Styles) FormatBatchTable(rows []BatchRow) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			data = append(data, []string{row.File, "-", "-", "-", row.Err.Error()})
			continue
		}
		data = append(data, []string{
			row.File,
			strconv.Itoa(row.Pages),
			strconv.Itoa(row.Lines),
			strconv.FormatFloat(row.WidestLine, 'f', 1, 64),
			"ok",
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers("FILE", "PAGES", "LINES", "WIDEST", "STATUS").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.TableHeader.Padding(0, 1)
			case col == 4 && row >= 0 && row < len(rows) && rows[row].Err != nil:
				return s.Warning.Padding(0, 1)
			case col == 4:
				return s.Success.Padding(0, 1)
			case col >= 1 && col <= 3:
				return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})

	return tbl.String() + "\n"
}

// FormatBatchSummary returns e.g. "3 files, 12 pages, 1 failed".
func (s *Styles) FormatBatchSummary(files, pages, failed int) string {
	fileWord, pageWord := "files", wordPages
	if files == 1 {
		fileWord = "file"
	}
	if pages == 1 {
		pageWord = wordPage
	}

	parts := []string{
		fmt.Sprintf("%d %s", files, fileWord),
		fmt.Sprintf("%d %s", pages, pageWord),
	}
	if failed > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d failed", failed)))
	}
	return strings.Join(parts, ", ") + "\n"
}
