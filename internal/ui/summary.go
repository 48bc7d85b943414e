package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/litescript/planet-chart/internal/almanac"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

var summaryHeaders = []string{"Series", "Present", "No event", "Masked", "Earliest", "Latest"}

// SummaryTable renders one row per series. Series with no drawn samples
// are dimmed.
func SummaryTable(rows []almanac.SummaryRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Series,
			strconv.Itoa(r.Present),
			strconv.Itoa(r.NoEvent),
			strconv.Itoa(r.Masked),
			r.Earliest,
			r.Latest,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(summaryHeaders...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && rows[row].Present == 0 {
				return emptyStyle
			}
			return cellStyle
		})
	return t.Render()
}

// WriteSummary writes a header line and the summary table for c.
func WriteSummary(w io.Writer, c *almanac.Chart) error {
	lo, hi := c.Config.Window()
	_, err := fmt.Fprintf(w, "%s\n%s ephemeris, UTC offset %+d h, window %+.0f..%+.0f h UTC\n%s\n",
		titleStyle.Render(fmt.Sprintf("Rise and set summary for %d", c.Config.Year)),
		c.Provider, c.Offset, lo, hi,
		SummaryTable(c.SummaryRows()))
	return err
}
