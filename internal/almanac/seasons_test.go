package almanac

import (
	"testing"
	"time"
)

func TestSeasons2017(t *testing.T) {
	// Published UTC instants, rounded to the minute.
	want := []struct {
		name  string
		month time.Month
		day   int
		hour  int
		min   int
		index int
	}{
		{"March Equinox", time.March, 20, 10, 29, 78},
		{"June Solstice", time.June, 21, 4, 24, 171},
		{"September Equinox", time.September, 22, 20, 2, 264},
		{"December Solstice", time.December, 21, 16, 28, 354},
	}

	got := Seasons(2017)
	if len(got) != len(want) {
		t.Fatalf("Seasons(2017) returned %d markers", len(got))
	}
	for i, w := range want {
		g := got[i]
		if g.Name != w.name {
			t.Errorf("marker %d name = %q, want %q", i, g.Name, w.name)
		}
		if g.DayIndex != w.index {
			t.Errorf("%s DayIndex = %d, want %d", w.name, g.DayIndex, w.index)
		}
		exp := time.Date(2017, w.month, w.day, w.hour, w.min, 0, 0, time.UTC)
		if d := g.Date.Sub(exp); d < -3*time.Minute || d > 3*time.Minute {
			t.Errorf("%s = %v, want %v", w.name, g.Date, exp)
		}
	}
}

func TestSeasonsOrdered(t *testing.T) {
	for _, year := range []int{1990, 2017, 2024, 2050} {
		ms := Seasons(year)
		for i := 1; i < len(ms); i++ {
			if !ms[i].Date.After(ms[i-1].Date) || ms[i].DayIndex <= ms[i-1].DayIndex {
				t.Errorf("%d: %s not after %s", year, ms[i].Name, ms[i-1].Name)
			}
		}
	}
}
