// Package temporal implements the temporal phrase engine: an ordered
// catalog of lexical rules, a matcher with precedence handling between
// overlapping rule kinds, and a resolver that folds matches into a
// concrete instant or recurrence descriptor
package temporal

import "time"

// Kind tags one recognized temporal phrase class
type Kind string

const (
	// KindRelativeDay covers today / tomorrow / yesterday
	KindRelativeDay Kind = "relative_day"
	// KindRelativeWeekDay covers next/last/this/coming {weekday}, optionally "next week {weekday}"
	KindRelativeWeekDay Kind = "relative_week_day"
	// KindRelativeWeek covers "end of (the) (next) week/month/year"
	KindRelativeWeek Kind = "relative_week"
	// KindDayType covers business day, weekday, weekend
	KindDayType Kind = "day_type"
	// KindSpecificTime covers clock times plus noon and midnight
	KindSpecificTime Kind = "specific_time"
	// KindRecurring covers every/each schedules and the monthly ordinal form
	KindRecurring Kind = "recurring"
	// KindTimeRange covers between/from X to/and/- Y
	KindTimeRange Kind = "time_range"
	// KindRelativeTime covers "in N minutes/hours/days/weeks/months"
	KindRelativeTime Kind = "relative_time"

	// Simple tag family; resolved through the same weekday/date arithmetic
	// as the rich tags above rather than a parallel code path

	// KindSpecificDay is a bare weekday mention ("on friday")
	KindSpecificDay Kind = "specific_day"
	// KindSpecificDate is a numeric calendar date
	KindSpecificDate Kind = "specific_date"
	// KindRelativeSpecificDay aliases KindRelativeWeekDay
	KindRelativeSpecificDay Kind = "relative_specific_day"
	// KindRelativeDate covers "N days/weeks/months/years from now"
	KindRelativeDate Kind = "relative_date"
	// KindThisDay aliases the naive forward weekday jump
	KindThisDay Kind = "this_day"
)

// ClockTime is an extracted 24-hour clock value
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// TimeRange is an extracted start/end pair; only Start positions the
// resolved instant, End is carried for callers that want the full span
type TimeRange struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Recurrence describes a repeating schedule, distinct from the single
// "next occurrence" instant the resolver also produces
type Recurrence struct {
	Frequency     string `json:"frequency"` // daily | weekly | monthly
	Day           string `json:"day,omitempty"`
	AdditionalDay string `json:"additional_day,omitempty"`
	Position      string `json:"position,omitempty"` // first | last | 1st..5th
	TimeContext   string `json:"time_context,omitempty"`
}

// MatchRecord is one tagged detection within the input text.
// Only the fields relevant to Kind are populated. Records are created
// fresh per parse, never persisted, and must be treated as immutable
// since the matcher may hand the same backing slice to multiple callers
type MatchRecord struct {
	Kind Kind `json:"kind"`

	// weekday forms
	Day      string `json:"day,omitempty"`      // canonical lowercase weekday name
	Relative string `json:"relative,omitempty"` // next | last | this | coming
	NextWeek bool   `json:"next_week,omitempty"`

	// end-of-period forms
	Period string `json:"period,omitempty"` // week | month | year
	Next   bool   `json:"next,omitempty"`

	// day types
	DayType string `json:"day_type,omitempty"` // businessday | weekday | weekend

	// clock values
	Time  *ClockTime `json:"time,omitempty"`
	Range *TimeRange `json:"range,omitempty"`

	// recurrence
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	// relative amounts and numeric dates
	Amount int    `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"` // minute | hour | day | week | month | year
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
	DayNum int    `json:"day_num,omitempty"`
}

// Resolved is the resolver output. Valid is false when the match list was
// empty, which signals "no temporal information" and is not an error
type Resolved struct {
	Instant    time.Time   `json:"instant"`
	Valid      bool        `json:"valid"`
	HasDate    bool        `json:"has_date"`
	HasTime    bool        `json:"has_time"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
}

// ISO8601 renders the instant, or "" when the resolution is absent
func (r Resolved) ISO8601() string {
	if !r.Valid {
		return ""
	}
	return r.Instant.Format(time.RFC3339Nano)
}

// dayNames is indexed by time.Weekday (Sunday = 0)
var dayNames = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// weekdayIndex maps a lowercase weekday name to its time.Weekday, ok=false otherwise
func weekdayIndex(name string) (time.Weekday, bool) {
	for i, n := range dayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}
