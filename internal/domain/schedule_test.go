package domain

import "testing"

func TestPeriodIndex(t *testing.T) {
	tests := []struct {
		period Period
		want   int
	}{
		{PeriodEarlyMorning, 0},
		{PeriodMorning, 1},
		{PeriodNoon, 2},
		{PeriodAfternoon, 3},
		{PeriodEvening, 4},
		{PeriodLateNight, 5},
		{PeriodOvernight, 6},
		{Period("midnight"), -1},
		{Period(""), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			if got := tt.period.Index(); got != tt.want {
				t.Errorf("Index() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidPeriod(t *testing.T) {
	if !ValidPeriod("late_night") {
		t.Error("late_night should be valid")
	}
	if ValidPeriod("night") {
		t.Error("night is not a canonical period")
	}
	for _, p := range Periods() {
		if !ValidPeriod(p) {
			t.Errorf("canonical period %q should be valid", p)
		}
	}
	var dusk Period = "dusk"
	if ValidPeriod(dusk) {
		t.Error("dusk is not a canonical period")
	}
}

func TestTimeBlockBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeBlock
		want bool
	}{
		{"earlier day", TimeBlock{1, PeriodOvernight}, TimeBlock{2, PeriodEarlyMorning}, true},
		{"same day earlier period", TimeBlock{1, PeriodMorning}, TimeBlock{1, PeriodEvening}, true},
		{"same block", TimeBlock{1, PeriodNoon}, TimeBlock{1, PeriodNoon}, false},
		{"later day", TimeBlock{3, PeriodMorning}, TimeBlock{2, PeriodOvernight}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(tt.b); got != tt.want {
				t.Errorf("Before() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleEntryWitnessedBy(t *testing.T) {
	entry := ScheduleEntry{
		Character: "Nathan Cross",
		Day:       1,
		Period:    PeriodEvening,
		Location:  "Sitting Room",
		Public:    false,
		Witnesses: []string{"Nathan Cross", "Lila Chen"},
	}

	if !entry.WitnessedBy("Lila Chen") {
		t.Error("listed witness should see the entry")
	}
	if entry.WitnessedBy("Helena Morven") {
		t.Error("outsider should not see a private entry")
	}

	entry.Public = true
	if !entry.WitnessedBy("Helena Morven") {
		t.Error("public entry should be visible to everyone")
	}
}
