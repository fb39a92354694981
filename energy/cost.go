package energy

import "math"

const (
	// DefaultRate is the electricity tariff in currency units per kWh.
	DefaultRate = 0.68

	// HoursAllDay is the daily runtime of an always-on device.
	HoursAllDay = 24

	// HoursTypicalUse is the daily runtime assumed for switchable devices
	// when estimating affordability.
	HoursTypicalUse = 8

	// DaysPerMonth is the horizon used to project a daily cost onto a
	// monthly bill.
	DaysPerMonth = 30
)

// CostAt returns the cost of running a load of the given wattage for the
// given number of hours at a tariff per kWh. Negative, NaN or infinite
// watt/hour inputs are coerced to zero; a non-positive or invalid rate
// falls back to DefaultRate.
func CostAt(watts, hours, rate float64) float64 {
	watts = sanitize(watts)
	hours = sanitize(hours)
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = DefaultRate
	}
	return watts * hours / 1000 * rate
}

// Cost is CostAt with the default tariff.
func Cost(watts, hours float64) float64 {
	return CostAt(watts, hours, DefaultRate)
}

// MonthlyCostAt projects the daily running cost over a 30-day month.
func MonthlyCostAt(watts, hours, rate float64) float64 {
	return CostAt(watts, hours, rate) * DaysPerMonth
}

// MonthlyCost is MonthlyCostAt with the default tariff.
func MonthlyCost(watts, hours float64) float64 {
	return MonthlyCostAt(watts, hours, DefaultRate)
}

func sanitize(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
