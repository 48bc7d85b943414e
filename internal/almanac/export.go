package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ChartExport is the JSON-serializable representation of a Chart.
type ChartExport struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	Provider      string         `json:"provider"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Year          int            `json:"year"`
	Offset        int            `json:"utc_offset_hours"`
	LocalMidnight float64        `json:"local_midnight_utc"`
	SetReference  string         `json:"set_reference"`
	Dates         []string       `json:"dates"`
	Seasons       []SeasonExport `json:"seasons"`
	Series        []SeriesExport `json:"series"`
}

// SeasonExport is a JSON-friendly season marker.
type SeasonExport struct {
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	DayIndex int       `json:"day_index"`
}

// SeriesExport holds one series. Hours[i] is null wherever States[i] is
// not "present".
type SeriesExport struct {
	Label    string     `json:"label"`
	Body     string     `json:"body"`
	Kind     string     `json:"kind"`
	Twilight bool       `json:"twilight"`
	Hours    []*float64 `json:"hours"`
	States   []string   `json:"states"`
}

// Export converts the chart to an exportable format.
func (c *Chart) Export(generatedAt time.Time) *ChartExport {
	out := &ChartExport{
		GeneratedAt:   generatedAt.UTC(),
		Provider:      c.Provider,
		Latitude:      c.Config.Latitude,
		Longitude:     c.Config.Longitude,
		Year:          c.Config.Year,
		Offset:        c.Offset,
		LocalMidnight: c.Config.LocalMidnight(),
		SetReference:  c.Config.SetRef.String(),
		Dates:         make([]string, len(c.Days)),
	}
	for i, d := range c.Days {
		out.Dates[i] = FormatDate(d)
	}
	for _, s := range c.Seasons {
		out.Seasons = append(out.Seasons, SeasonExport(s))
	}
	for _, s := range c.AllSeries() {
		se := SeriesExport{
			Label:    s.Label(),
			Body:     s.Body.Name,
			Kind:     s.Kind.String(),
			Twilight: s.Twilight,
			Hours:    make([]*float64, len(s.Samples)),
			States:   make([]string, len(s.Samples)),
		}
		for i, smp := range s.Samples {
			if smp.Drawn() {
				h := smp.Hours
				se.Hours[i] = &h
			}
			se.States[i] = smp.State.String()
		}
		out.Series = append(out.Series, se)
	}
	return out
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Series   string
	Present  int
	NoEvent  int
	Masked   int
	Earliest string // earliest drawn hour, "-" when none
	Latest   string
}

// SummaryRows creates one row per series in plotting order.
func (c *Chart) SummaryRows() []SummaryRow {
	var rows []SummaryRow
	for _, s := range c.AllSeries() {
		row := SummaryRow{
			Series:   s.Label(),
			Present:  s.Count(Present),
			NoEvent:  s.Count(NoEvent),
			Masked:   s.Count(Masked),
			Earliest: "-",
			Latest:   "-",
		}
		if lo, hi, ok := s.Range(); ok {
			row.Earliest = FormatHours(lo)
			row.Latest = FormatHours(hi)
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatHours renders signed hours as "+HH:MM" / "-HH:MM".
func FormatHours(h float64) string {
	sign := "+"
	if h < 0 {
		sign = "-"
		h = -h
	}
	mins := int(h*60 + 0.5)
	return fmt.Sprintf("%s%02d:%02d", sign, mins/60, mins%60)
}
