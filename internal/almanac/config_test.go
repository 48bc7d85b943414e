package almanac

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/google/go-cmp/cmp"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		year    int
		wantErr string
	}{
		{"default site", DefaultLatitude, DefaultLongitude, DefaultYear, ""},
		{"edges", 90, 180, 2017, ""},
		{"lat 91", 91, 0, 2017, "latitude 91"},
		{"lon 181", 0, 181, 2017, "longitude 181"},
		{"lon -181", 0, -181, 2017, "longitude -181"},
		{"year 0", 0, 0, 0, "year 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.lat, tt.lon, tt.year, SetRefMidnight)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewConfig() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("NewConfig() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewConfig() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	err := Config{Latitude: 91, Longitude: 181, Year: 2017}.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v", err)
	}
	for _, want := range []string{"latitude", "longitude"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
}

func TestLongitudeMinus180IsPlus180(t *testing.T) {
	west, err := NewConfig(10, -180, 2017, SetRefMidnight)
	if err != nil {
		t.Fatal(err)
	}
	east, err := NewConfig(10, 180, 2017, SetRefMidnight)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(east, west); diff != "" {
		t.Errorf("-180 and +180 configs differ (-east +west):\n%s", diff)
	}
	if west.Offset() != 12 {
		t.Errorf("Offset() = %d, want 12", west.Offset())
	}
}

func TestOffsetAndWindow(t *testing.T) {
	tests := []struct {
		lon      float64
		offset   int
		midnight float64
		invert   bool
	}{
		{DefaultLongitude, -6, 6, false},
		{-75, -5, 5, false},
		{-10, -1, 1, true},
		{0, 0, 0, false},
		{7.5, 0, 0, false},
		{139.7, 9, -9, false},
		{-179, -12, 12, false},
	}
	for _, tt := range tests {
		c := Config{Latitude: 40, Longitude: tt.lon, Year: 2017}
		if got := c.Offset(); got != tt.offset {
			t.Errorf("lon %v: Offset() = %d, want %d", tt.lon, got, tt.offset)
		}
		if got := c.LocalMidnight(); got != tt.midnight {
			t.Errorf("lon %v: LocalMidnight() = %v, want %v", tt.lon, got, tt.midnight)
		}
		lo, hi := c.Window()
		if lo != tt.midnight-10 || hi != tt.midnight+10 {
			t.Errorf("lon %v: Window() = [%v, %v]", tt.lon, lo, hi)
		}
		if got := c.InvertX(); got != tt.invert {
			t.Errorf("lon %v: InvertX() = %v, want %v", tt.lon, got, tt.invert)
		}
	}
}

func TestParseSetRef(t *testing.T) {
	for in, want := range map[string]SetRef{"": SetRefMidnight, "midnight": SetRefMidnight, "noon": SetRefNoon} {
		got, err := ParseSetRef(in)
		if err != nil || got != want {
			t.Errorf("ParseSetRef(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSetRef("dawn"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseSetRef(dawn) error = %v", err)
	}
}

func TestCalendar(t *testing.T) {
	for _, year := range []int{2017, 2020, 2100} {
		days := Calendar(year)
		if len(days) != DaysPerYear {
			t.Fatalf("Calendar(%d) has %d days, want %d", year, len(days), DaysPerYear)
		}
		for _, d := range days {
			if d.Month == 2 && d.Day == 29 {
				t.Errorf("Calendar(%d) contains February 29", year)
			}
		}
	}

	days := Calendar(2017)
	want := []datetime.CalendarDate{
		{Year: 2017, Month: 1, Day: 1},
		{Year: 2017, Month: 1, Day: 31},
		{Year: 2017, Month: 2, Day: 1},
		{Year: 2017, Month: 2, Day: 28},
		{Year: 2017, Month: 3, Day: 1},
		{Year: 2017, Month: 12, Day: 31},
	}
	got := []datetime.CalendarDate{days[0], days[30], days[31], days[58], days[59], days[364]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Calendar(2017) mismatch (-want +got):\n%s", diff)
	}

	if m := UTCMidnight(days[59]); !m.Equal(time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("UTCMidnight() = %v", m)
	}
	if s := FormatDate(days[364]); s != "2017-12-31" {
		t.Errorf("FormatDate() = %q", s)
	}
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		m    time.Month
		d    int
		want int
	}{
		{time.January, 1, 0},
		{time.March, 1, 59},
		{time.June, 21, 171},
		{time.December, 31, 364},
		{time.February, 29, -1},
		{time.Month(13), 1, -1},
	}
	for _, tt := range tests {
		if got := DayIndex(tt.m, tt.d); got != tt.want {
			t.Errorf("DayIndex(%v, %d) = %d, want %d", tt.m, tt.d, got, tt.want)
		}
	}
	if !IsLeap(2020) || IsLeap(2017) || IsLeap(2100) {
		t.Error("unexpected IsLeap results")
	}
}
