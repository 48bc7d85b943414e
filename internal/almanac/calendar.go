package almanac

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// DaysPerYear is the length of every generated calendar. February 29 is
// never produced, so leap years drift by one day after February.
const DaysPerYear = 365

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Calendar returns one date per day of year using fixed month lengths.
// The result always has DaysPerYear entries.
func Calendar(year int) []datetime.CalendarDate {
	days := make([]datetime.CalendarDate, 0, DaysPerYear)
	for m, n := range monthLengths {
		for d := 1; d <= n; d++ {
			days = append(days, datetime.CalendarDate{
				Year:  year,
				Month: datetime.Month(m + 1),
				Day:   d,
			})
		}
	}
	return days
}

// UTCMidnight returns the start of cd in UTC.
func UTCMidnight(cd datetime.CalendarDate) time.Time {
	return time.Date(cd.Year, time.Month(cd.Month), cd.Day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders cd as YYYY-MM-DD.
func FormatDate(cd datetime.CalendarDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", cd.Year, cd.Month, cd.Day)
}

// DayIndex returns the 0-based position of month/day in a Calendar, or -1
// for February 29 and invalid dates.
func DayIndex(month time.Month, day int) int {
	if month < time.January || month > time.December {
		return -1
	}
	if day < 1 || day > monthLengths[month-1] {
		return -1
	}
	idx := day - 1
	for m := 0; m < int(month)-1; m++ {
		idx += monthLengths[m]
	}
	return idx
}

// IsLeap reports whether year has a February 29 the calendar omits.
func IsLeap(year int) bool {
	return datetime.IsLeap(year)
}
