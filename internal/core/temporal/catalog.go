package temporal

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule pairs a compiled matcher with the Kind it detects and an extractor
// that pulls the minimal structured payload out of the submatches.
// Rules are immutable configuration; the catalog order is the priority
// order the matcher and resolver rely on
type Rule struct {
	Kind    Kind
	re      *regexp.Regexp
	extract func(m []string) MatchRecord
}

// CatalogVersion tags parse log records so rule changes are traceable
const CatalogVersion = "2"

const weekdayAlt = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

// suppression probes used by the matcher (see Match)
var (
	reEndOfWeek = regexp.MustCompile(`(?i)\b(?:by\s+)?end\s+of(?:\s+the)?(?:\s+next)?\s+week\b`)

	reExplicitWeekday = regexp.MustCompile(
		`(?i)\b(?:next|last|this|coming)\s+(?:week\s+)?(` + weekdayAlt + `)\b`)

	reMonthlyOrdinal = regexp.MustCompile(
		`(?i)\b(?:monthly\s+report\s+on|monthly|every\s+month\s+on)\s+(?:the\s+)?` +
			`(first|last|1st|2nd|3rd|[45]th)?\s*(` + weekdayAlt + `)\b`)
)

// canonToken lowercases and strips inner whitespace and dots so that
// "Business Day" and "p.m." normalize to comparable forms
func canonToken(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), "")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// to24h converts a 12-hour clock reading to 24-hour form.
// pm adds 12 unless the hour is already 12; 12am folds to 0.
// An empty meridiem leaves the hour as written
func to24h(hour int, meridiem string) int {
	m := canonToken(meridiem)
	switch {
	case strings.HasPrefix(m, "p") && hour < 12:
		return hour + 12
	case strings.HasPrefix(m, "a") && hour == 12:
		return 0
	default:
		return hour
	}
}

// Catalog returns the ordered rule set. The slice is shared; callers must
// not mutate it
func Catalog() []Rule { return catalog }

var catalog = []Rule{
	{
		Kind: KindRelativeDay,
		re:   regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindRelativeDay, Day: canonToken(m[1])}
		},
	},
	{
		Kind: KindRelativeWeekDay,
		re: regexp.MustCompile(
			`(?i)\b(next|last|this|coming)\s+(?:week(?:'s)?\s+(` + weekdayAlt + `)\b|week\b|(` + weekdayAlt + `)\b)`),
		extract: func(m []string) MatchRecord {
			rec := MatchRecord{Kind: KindRelativeWeekDay, Relative: canonToken(m[1])}
			switch {
			case m[2] != "": // "next week monday"
				rec.Day = canonToken(m[2])
				rec.NextWeek = true
			case m[3] != "": // "next monday"
				rec.Day = canonToken(m[3])
			}
			return rec // bare "next week" leaves Day empty
		},
	},
	{
		Kind: KindRelativeWeek,
		re:   regexp.MustCompile(`(?i)\b(?:by\s+)?end\s+of(?:\s+the)?(\s+next)?\s+(week|month|year)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{
				Kind:   KindRelativeWeek,
				Period: canonToken(m[2]),
				Next:   m[1] != "",
			}
		},
	},
	{
		Kind: KindDayType,
		re:   regexp.MustCompile(`(?i)\b(?:by\s+)?(?:end\s+of\s+)?(?:the\s+)?(business\s*day)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindDayType, DayType: canonToken(m[1])}
		},
	},
	{
		Kind: KindSpecificTime,
		re:   regexp.MustCompile(`(?i)\b(1[0-2]|0?[1-9])(?::([0-5][0-9]))?\s*(am|pm|a\.m\.|p\.m\.)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{
				Kind: KindSpecificTime,
				Time: &ClockTime{Hour: to24h(atoi(m[1]), m[3]), Minute: atoi(m[2])},
			}
		},
	},
	{
		Kind: KindRecurring,
		re: regexp.MustCompile(
			`(?i)\b(?:weekly\s+)?(?:every|each)\s+(weekday|day|morning|evening|week|month|` + weekdayAlt + `)` +
				`(?:\s+and\s+(` + weekdayAlt + `))?\b`),
		extract: func(m []string) MatchRecord {
			token := canonToken(m[1])
			rec := Recurrence{}
			switch token {
			case "day", "morning", "evening", "weekday":
				rec.Frequency = "daily"
			case "month":
				rec.Frequency = "monthly"
			default: // "week" or a weekday name
				rec.Frequency = "weekly"
			}
			if _, ok := weekdayIndex(token); ok {
				rec.Day = token
			}
			if token == "morning" || token == "evening" {
				rec.TimeContext = token
			}
			if m[2] != "" {
				rec.AdditionalDay = canonToken(m[2])
			}
			return MatchRecord{Kind: KindRecurring, Recurrence: &rec}
		},
	},
	{
		Kind: KindRecurring,
		re:   reMonthlyOrdinal,
		extract: func(m []string) MatchRecord {
			pos := canonToken(m[1])
			if pos == "" {
				pos = "last"
			}
			return MatchRecord{Kind: KindRecurring, Recurrence: &Recurrence{
				Frequency: "monthly",
				Day:       canonToken(m[2]),
				Position:  pos,
			}}
		},
	},
	{
		Kind: KindTimeRange,
		re: regexp.MustCompile(
			`(?i)\b(?:between|from)\s+(2[0-3]|1[0-9]|0?[0-9])(?::([0-5][0-9]))?\s*(am|pm)?` +
				`\s*(?:to|and|-)\s+(2[0-3]|1[0-9]|0?[0-9])(?::([0-5][0-9]))?\s*(am|pm)?\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindTimeRange, Range: &TimeRange{
				Start: ClockTime{Hour: to24h(atoi(m[1]), m[3]), Minute: atoi(m[2])},
				End:   ClockTime{Hour: to24h(atoi(m[4]), m[6]), Minute: atoi(m[5])},
			}}
		},
	},
	{
		Kind: KindSpecificTime,
		re:   regexp.MustCompile(`(?i)\b(noon|midnight)\b`),
		extract: func(m []string) MatchRecord {
			h := 0
			if canonToken(m[1]) == "noon" {
				h = 12
			}
			return MatchRecord{Kind: KindSpecificTime, Time: &ClockTime{Hour: h}}
		},
	},
	{
		Kind: KindRelativeTime,
		re:   regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(minute|hour|day|week|month)s?\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindRelativeTime, Amount: atoi(m[1]), Unit: canonToken(m[2])}
		},
	},
	{
		Kind: KindDayType,
		re:   regexp.MustCompile(`(?i)\b(?:by\s+)?(?:end\s+of\s+)?(weekday|weekend)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindDayType, DayType: canonToken(m[1])}
		},
	},
	{
		Kind: KindSpecificDay,
		re:   regexp.MustCompile(`(?i)\bon\s+(` + weekdayAlt + `)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindSpecificDay, Day: canonToken(m[1])}
		},
	},
	{
		Kind: KindSpecificDate,
		re:   regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindSpecificDate, Year: atoi(m[1]), Month: atoi(m[2]), DayNum: atoi(m[3])}
		},
	},
	{
		Kind: KindSpecificDate,
		re:   regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		extract: func(m []string) MatchRecord {
			// month/day/year ordering
			return MatchRecord{Kind: KindSpecificDate, Year: atoi(m[3]), Month: atoi(m[1]), DayNum: atoi(m[2])}
		},
	},
	{
		Kind: KindRelativeDate,
		re:   regexp.MustCompile(`(?i)\b(\d+)\s+(day|week|month|year)s?\s+(?:from\s+now|later|ahead)\b`),
		extract: func(m []string) MatchRecord {
			return MatchRecord{Kind: KindRelativeDate, Amount: atoi(m[1]), Unit: canonToken(m[2])}
		},
	},
}
