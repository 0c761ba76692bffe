package rental

import "time"

// LateReturnSurchargePerDay is the flat daily charge for every day the new
// expected end date runs past the originally contracted one. Extensions are
// never billed at plan rate.
const LateReturnSurchargePerDay = 50.0

// TotalValue prices a return-date amendment without mutating the rental.
//
// Let U be the days from start to the new expected end, L the days from
// start to the current expected end, both truncated toward zero.
//
//   - same date: U days at plan rate
//   - later date: the L contracted days at plan rate, plus the flat
//     surcharge for each extra day
//   - earlier date: U days at plan rate, plus the early-return penalty per
//     day returned early (short plans only, see Plan.EarlyReturnPenaltyPerDay)
func TotalValue(r *Rental, newExpectedEnd time.Time) float64 {
	u := float64(daysBetween(r.StartDate, newExpectedEnd))
	l := float64(daysBetween(r.StartDate, r.ExpectedEndDate))
	rate := r.Plan.DailyRate()

	switch {
	case newExpectedEnd.Equal(r.ExpectedEndDate):
		return u * rate

	case newExpectedEnd.After(r.ExpectedEndDate):
		extra := float64(daysBetween(r.ExpectedEndDate, newExpectedEnd))
		return l*rate + extra*LateReturnSurchargePerDay

	default:
		early := float64(daysBetween(newExpectedEnd, r.ExpectedEndDate))
		return u*rate + early*r.Plan.EarlyReturnPenaltyPerDay()
	}
}

// daysBetween counts whole days from a to b, truncated toward zero.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
