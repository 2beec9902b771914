package temporal

import "time"

// ResolverOptions tunes the end-of-period anchor. The business-week close
// is organization policy, so it is injectable rather than hard-coded
type ResolverOptions struct {
	// WeekEndDay is the weekday the working week closes on
	WeekEndDay time.Weekday
	// WeekEndHour is the clock hour the period-close anchor uses
	WeekEndHour int
}

// Defaults fills unset fields: Friday at 17:00.
// A zero WeekEndDay reads as unset (nobody closes the week on Sunday)
func (o ResolverOptions) Defaults() ResolverOptions {
	if o.WeekEndDay == time.Sunday {
		o.WeekEndDay = time.Friday
	}
	if o.WeekEndHour == 0 {
		o.WeekEndHour = 17
	}
	return o
}

// state is the single mutable working value the transitions fold over.
// Later matches override earlier ones on the same field
type state struct {
	t       time.Time
	hasDate bool
	hasTime bool
	rec     *Recurrence
	opts    ResolverOptions
}

type transition func(*state, MatchRecord)

// Resolver folds an ordered match list plus a reference instant into a
// Resolved value. It is pure and safe for concurrent use
type Resolver struct {
	opts  ResolverOptions
	apply map[Kind]transition
}

// NewResolver constructs a Resolver with the given options
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{opts: opts.Defaults()}
	r.apply = map[Kind]transition{
		KindRelativeDay:     applyRelativeDay,
		KindRelativeWeekDay: applyWeekday,
		KindRelativeWeek:    applyEndOfPeriod,
		KindDayType:         applyDayType,
		KindSpecificTime:    applySpecificTime,
		KindTimeRange:       applyTimeRange,
		KindRecurring:       applyRecurring,
		KindRelativeTime:    applyRelativeAmount,

		// simple tag family shares the arithmetic above
		KindSpecificDay:         applyWeekday,
		KindThisDay:             applyWeekday,
		KindRelativeSpecificDay: applyWeekday,
		KindRelativeDate:        applyRelativeAmount,
		KindSpecificDate:        applySpecificDate,
	}
	return r
}

// Resolve processes matches in list order against ref. A zero ref means
// "now". An empty match list returns an absent resolution, not an error
func (r *Resolver) Resolve(matches []MatchRecord, ref time.Time) Resolved {
	if len(matches) == 0 {
		return Resolved{}
	}
	if ref.IsZero() {
		ref = time.Now()
	}

	st := state{t: ref, opts: r.opts}
	for _, m := range matches {
		if fn, ok := r.apply[m.Kind]; ok {
			fn(&st, m)
		}
	}

	// an unqualified date-only task is due by end of that day, not midnight
	if st.hasDate && !st.hasTime {
		st.t = setClock(st.t, 23, 59, 59, 999*int(time.Millisecond))
	}

	return Resolved{
		Instant:    st.t,
		Valid:      true,
		HasDate:    st.hasDate,
		HasTime:    st.hasTime,
		Recurrence: st.rec,
	}
}

// setClock replaces the time-of-day components, keeping the calendar date
func setClock(t time.Time, h, m, s, ns int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, ns, t.Location())
}

func applyRelativeDay(st *state, m MatchRecord) {
	st.hasDate = true
	switch m.Day {
	case "tomorrow":
		st.t = st.t.AddDate(0, 0, 1)
	case "yesterday":
		st.t = st.t.AddDate(0, 0, -1)
	}
	// today is a no-op beyond marking the date as set
}

// applyWeekday serves relative_week_day, relative_specific_day,
// specific_day and this_day with one arithmetic: naive forward diff to
// the target weekday, then qualifier adjustments
func applyWeekday(st *state, m MatchRecord) {
	st.hasDate = true

	if m.Day == "" {
		// bare "next week" / "last week"
		switch m.Relative {
		case "next", "coming":
			st.t = st.t.AddDate(0, 0, 7)
		case "last":
			st.t = st.t.AddDate(0, 0, -7)
		}
		return
	}

	target, ok := weekdayIndex(m.Day)
	if !ok {
		return
	}
	diff := int(target-st.t.Weekday()+7) % 7

	switch m.Relative {
	case "next":
		if m.NextWeek {
			diff += 7 // "next week monday" pushes past the same-week occurrence
		} else if diff == 0 {
			diff = 7 // plain "next monday" on a Monday means the following one
		}
	case "last":
		diff -= 7
	}
	st.t = st.t.AddDate(0, 0, diff)
}

// applyEndOfPeriod anchors to the close of the week, month or year.
// The week close is the upcoming WeekEndDay at WeekEndHour
func applyEndOfPeriod(st *state, m MatchRecord) {
	st.hasDate = true
	st.hasTime = true

	switch m.Period {
	case "month":
		y, mo, _ := st.t.Date()
		if m.Next {
			mo++
		}
		// day 0 of the following month normalizes to the last day of mo
		st.t = time.Date(y, mo+1, 0, st.opts.WeekEndHour, 0, 0, 0, st.t.Location())
	case "year":
		y := st.t.Year()
		if m.Next {
			y++
		}
		st.t = time.Date(y, time.December, 31, st.opts.WeekEndHour, 0, 0, 0, st.t.Location())
	default: // week, and the business-day alias
		diff := int(st.opts.WeekEndDay-st.t.Weekday()+7) % 7
		if m.Next {
			diff += 7
		}
		st.t = setClock(st.t.AddDate(0, 0, diff), st.opts.WeekEndHour, 0, 0, 0)
	}
}

func applyDayType(st *state, m MatchRecord) {
	switch m.DayType {
	case "businessday":
		// end of business day closes with the working week
		applyEndOfPeriod(st, MatchRecord{Kind: KindRelativeWeek, Period: "week"})
	case "weekend":
		st.hasDate = true
		if st.t.Weekday() < time.Saturday {
			st.t = st.t.AddDate(0, 0, int(time.Saturday-st.t.Weekday()))
		}
	case "weekday":
		st.hasDate = true
		switch st.t.Weekday() {
		case time.Saturday:
			st.t = st.t.AddDate(0, 0, 2)
		case time.Sunday:
			st.t = st.t.AddDate(0, 0, 1)
		}
	}
}

func applySpecificTime(st *state, m MatchRecord) {
	if m.Time == nil {
		return
	}
	st.hasTime = true
	st.t = setClock(st.t, m.Time.Hour, m.Time.Minute, 0, 0)
}

// applyTimeRange positions the instant on the range start; the end bound
// never overrides it
func applyTimeRange(st *state, m MatchRecord) {
	if m.Range == nil {
		return
	}
	st.hasTime = true
	st.t = setClock(st.t, m.Range.Start.Hour, m.Range.Start.Minute, 0, 0)
}

func applyRecurring(st *state, m MatchRecord) {
	if m.Recurrence == nil {
		return
	}
	rec := *m.Recurrence // copy so the shared match list stays immutable
	st.rec = &rec

	switch rec.Frequency {
	case "daily":
		if !st.hasDate {
			st.t = st.t.AddDate(0, 0, 1)
			st.hasDate = true
		}
	case "weekly":
		if target, ok := weekdayIndex(rec.Day); ok {
			// forward-only; landing on today keeps today as the next occurrence
			st.t = st.t.AddDate(0, 0, int(target-st.t.Weekday()+7)%7)
			st.hasDate = true
		}
	case "monthly":
		// recorded in the descriptor only; the ordinal form does not
		// collapse into a single instant
	}

	switch rec.TimeContext {
	case "morning":
		st.t = setClock(st.t, 9, 0, 0, 0)
		st.hasTime = true
	case "evening":
		st.t = setClock(st.t, 18, 0, 0, 0)
		st.hasTime = true
	}
}

// applyRelativeAmount serves relative_time and relative_date
func applyRelativeAmount(st *state, m MatchRecord) {
	switch m.Unit {
	case "minute":
		st.t = st.t.Add(time.Duration(m.Amount) * time.Minute)
		st.hasTime = true
	case "hour":
		st.t = st.t.Add(time.Duration(m.Amount) * time.Hour)
		st.hasTime = true
	case "day":
		st.t = st.t.AddDate(0, 0, m.Amount)
		st.hasDate = true
	case "week":
		st.t = st.t.AddDate(0, 0, 7*m.Amount)
		st.hasDate = true
	case "month":
		st.t = st.t.AddDate(0, m.Amount, 0)
		st.hasDate = true
	case "year":
		st.t = st.t.AddDate(m.Amount, 0, 0)
		st.hasDate = true
	}
}

func applySpecificDate(st *state, m MatchRecord) {
	st.hasDate = true
	st.t = time.Date(m.Year, time.Month(m.Month), m.DayNum,
		st.t.Hour(), st.t.Minute(), st.t.Second(), st.t.Nanosecond(), st.t.Location())
}
