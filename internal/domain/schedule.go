package domain

// Period is one of the fixed ordered set of time periods that divide a day.
type Period string

const (
	PeriodEarlyMorning Period = "early_morning"
	PeriodMorning      Period = "morning"
	PeriodNoon         Period = "noon"
	PeriodAfternoon    Period = "afternoon"
	PeriodEvening      Period = "evening"
	PeriodLateNight    Period = "late_night"
	PeriodOvernight    Period = "overnight"
)

var periodOrder = []Period{
	PeriodEarlyMorning,
	PeriodMorning,
	PeriodNoon,
	PeriodAfternoon,
	PeriodEvening,
	PeriodLateNight,
	PeriodOvernight,
}

// Periods returns the canonical day periods in order.
func Periods() []Period {
	out := make([]Period, len(periodOrder))
	copy(out, periodOrder)
	return out
}

// Index returns the period's position within the day, or -1 if unknown.
func (p Period) Index() int {
	for i, c := range periodOrder {
		if c == p {
			return i
		}
	}
	return -1
}

func ValidPeriod(p Period) bool {
	return p.Index() >= 0
}

// TimeBlock is a (day, period) coordinate. Equality is by both fields;
// ordering is by day, then by period index.
type TimeBlock struct {
	Day    int    `json:"day"`
	Period Period `json:"period"`
}

// Before reports whether t precedes o in the timeline.
func (t TimeBlock) Before(o TimeBlock) bool {
	if t.Day != o.Day {
		return t.Day < o.Day
	}
	return t.Period.Index() < o.Period.Index()
}

// ScheduleEntry records where a character was and what they were doing
// during one TimeBlock. Witnesses always include the character and all
// companions; the index seeds those on insert.
type ScheduleEntry struct {
	Character  string   `json:"character"`
	Day        int      `json:"day"`
	Period     Period   `json:"period"`
	Location   string   `json:"location"`
	Activity   string   `json:"activity"`
	Companions []string `json:"companions,omitempty"`
	Public     bool     `json:"is_public"`
	Witnesses  []string `json:"witnesses,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Block returns the entry's TimeBlock coordinate.
func (e *ScheduleEntry) Block() TimeBlock {
	return TimeBlock{Day: e.Day, Period: e.Period}
}

// WitnessedBy reports whether the character may know about this entry.
func (e *ScheduleEntry) WitnessedBy(character string) bool {
	if e.Public {
		return true
	}
	for _, w := range e.Witnesses {
		if w == character {
			return true
		}
	}
	return false
}
