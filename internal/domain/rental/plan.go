package rental

import "errors"

// Plan is a rental plan, identified by its contracted length in days, as
// stored in the `rental` table.
type Plan int

const (
	PlanUnknown Plan = 0
	PlanDays7   Plan = 7
	PlanDays15  Plan = 15
	PlanDays30  Plan = 30
	PlanDays45  Plan = 45
	PlanDays50  Plan = 50
)

var ErrInvalidPlan = errors.New("invalid rental plan")

// ParsePlan validates a day count and returns the matching plan. Day counts
// outside the tariff map to PlanUnknown without error, mirroring how unknown
// plans are priced at rate zero rather than rejected.
func ParsePlan(days int) Plan {
	plan := Plan(days)
	if plan.Valid() {
		return plan
	}
	return PlanUnknown
}

// Valid reports whether plan is one of the contracted plan lengths.
func (plan Plan) Valid() bool {
	switch plan {
	case PlanUnknown, PlanDays7, PlanDays15, PlanDays30, PlanDays45, PlanDays50:
		return true
	default:
		return false
	}
}

// Days returns the contracted number of days.
func (plan Plan) Days() int {
	return int(plan)
}

// DailyRate returns the per-day price in currency units. Unknown plans are
// billed at zero.
func (plan Plan) DailyRate() float64 {
	switch plan {
	case PlanDays7:
		return 30
	case PlanDays15:
		return 28
	case PlanDays30:
		return 22
	case PlanDays45:
		return 20
	case PlanDays50:
		return 18
	default:
		return 0
	}
}

// EarlyReturnPenaltyPerDay returns the per-day penalty charged for each day
// the motorbike comes back before the expected end date. The penalty exists
// only for the two short plans, expressed as a fraction of the plan's daily
// rate. The longer plans carry no early-return penalty at all. This split is
// a deliberate tariff rule, not a formula to generalize.
func (plan Plan) EarlyReturnPenaltyPerDay() float64 {
	switch plan {
	case PlanDays7:
		return 0.20 * plan.DailyRate()
	case PlanDays15:
		return 0.40 * plan.DailyRate()
	default:
		return 0
	}
}
