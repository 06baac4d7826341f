package model

// HoursPerYear is the length of every aligned annual series. Leap years
// are not modeled; the calendar always covers 365 days.
const HoursPerYear = 8760

// RawSeriesLen is the length of an unaligned EPW-import series: a
// 7-element metadata header followed by 8760 hourly values.
const (
	RawSeriesLen = 8767
	HeaderLen    = 7
)

// DaysInMonth holds the fixed non-leap month lengths.
var DaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthStartHOY holds cumulative hour-of-year month boundaries. Month m
// (1-based) covers HOYs MonthStartHOY[m-1]+1 through MonthStartHOY[m].
var MonthStartHOY = [13]int{0, 744, 1416, 2160, 2880, 3624, 4344, 5088, 5832, 6552, 7296, 8016, 8760}

// CalendarHour is one entry of the 8760-hour calendar index.
type CalendarHour struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31, day of month
	Hour  int // 1-24, hour of day
	HOY   int // 1-8760, hour of year
}

// MonthOfHOY returns the 1-based month containing the given hour of year.
func MonthOfHOY(hoy int) int {
	for m := 1; m <= 12; m++ {
		if hoy <= MonthStartHOY[m] {
			return m
		}
	}
	return 12
}
