package energy

import (
	"math"
	"testing"
)

func TestCostAtFormula(t *testing.T) {
	cases := []struct {
		watts, hours, rate float64
		want               float64
	}{
		{100, 24, 0.68, 100 * 24 / 1000.0 * 0.68},
		{60, 8, 0.68, 60 * 8 / 1000.0 * 0.68},
		{1500, 1, 1.0, 1.5},
		{0, 24, 0.68, 0},
		{100, 0, 0.68, 0},
	}
	for _, c := range cases {
		got := CostAt(c.watts, c.hours, c.rate)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("CostAt(%v, %v, %v) = %v, want %v", c.watts, c.hours, c.rate, got, c.want)
		}
	}
}

func TestCostAtCoercesInvalidInputs(t *testing.T) {
	if got := CostAt(math.NaN(), 24, 0.68); got != 0 {
		t.Fatalf("NaN watts: got %v, want 0", got)
	}
	if got := CostAt(100, math.Inf(1), 0.68); got != 0 {
		t.Fatalf("infinite hours: got %v, want 0", got)
	}
	if got := CostAt(-50, 24, 0.68); got != 0 {
		t.Fatalf("negative watts: got %v, want 0", got)
	}
	if math.IsNaN(CostAt(100, 24, math.NaN())) {
		t.Fatal("NaN rate must not propagate")
	}
}

func TestCostAtDefaultsNonPositiveRate(t *testing.T) {
	want := Cost(100, 24)
	if got := CostAt(100, 24, 0); got != want {
		t.Fatalf("zero rate: got %v, want default-rate cost %v", got, want)
	}
	if got := CostAt(100, 24, -1); got != want {
		t.Fatalf("negative rate: got %v, want default-rate cost %v", got, want)
	}
}

func TestCostAllDayFridgeExample(t *testing.T) {
	// 100 W running 24 h at the 0.68 tariff costs 1.632 per day.
	got := Cost(100, HoursAllDay)
	if math.Abs(got-1.632) > 1e-9 {
		t.Fatalf("Cost(100, 24) = %v, want 1.632", got)
	}
}

func TestMonthlyCostProjection(t *testing.T) {
	// 60 W over 8 h is about 0.326 daily, 9.79 across a month.
	daily := Cost(60, HoursTypicalUse)
	if math.Abs(daily-0.3264) > 1e-9 {
		t.Fatalf("daily cost = %v, want 0.3264", daily)
	}
	monthly := MonthlyCost(60, HoursTypicalUse)
	if math.Abs(monthly-daily*30) > 1e-9 {
		t.Fatalf("monthly cost = %v, want %v", monthly, daily*30)
	}
}
