package almanac

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// SeasonMarker is an equinox or solstice placed on the day axis.
type SeasonMarker struct {
	Name     string
	Date     time.Time // UTC, minute precision
	DayIndex int       // position in Calendar, -1 if it falls on Feb 29
}

// Seasons returns the March equinox, June solstice, September equinox and
// December solstice of year.
func Seasons(year int) []SeasonMarker {
	events := []struct {
		name string
		jde  func(int) float64
	}{
		{"March Equinox", solstice.March},
		{"June Solstice", solstice.June},
		{"September Equinox", solstice.September},
		{"December Solstice", solstice.December},
	}

	out := make([]SeasonMarker, 0, len(events))
	for _, ev := range events {
		y, m, d := julian.JDToCalendar(ev.jde(year))
		day := int(d)
		frac := d - float64(day)
		date := time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC).
			Add(time.Duration(frac * 24 * float64(time.Hour))).
			Truncate(time.Minute)
		out = append(out, SeasonMarker{
			Name:     ev.name,
			Date:     date,
			DayIndex: DayIndex(time.Month(m), day),
		})
	}
	return out
}
