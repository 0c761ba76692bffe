package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func mustRental(t *testing.T, planDays, expectedEndDay int) *Rental {
	t.Helper()
	r, err := New("rental-1", "person-1", "bike-1", day(0), day(expectedEndDay), day(expectedEndDay), ParsePlan(planDays))
	require.NoError(t, err)
	return r
}

func TestTotalValueUnchangedDate(t *testing.T) {
	r := mustRental(t, 7, 7)
	assert.Equal(t, 210.0, TotalValue(r, day(7)))
}

func TestTotalValueExtension(t *testing.T) {
	// 7 contracted days at 30 plus 3 extra days at the flat surcharge
	r := mustRental(t, 7, 7)
	assert.Equal(t, 7*30.0+3*50.0, TotalValue(r, day(10)))
}

func TestTotalValueEarlyReturnShortPlans(t *testing.T) {
	tests := []struct {
		name      string
		planDays  int
		returnDay int
		want      float64
	}{
		{"7 day plan two days early", 7, 5, 5*30.0 + 2*(0.20*30.0)},
		{"15 day plan five days early", 15, 10, 10*28.0 + 5*(0.40*28.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRental(t, tt.planDays, tt.planDays)
			assert.InDelta(t, tt.want, TotalValue(r, day(tt.returnDay)), 1e-9)
		})
	}
}

func TestTotalValueEarlyReturnLongPlansNoPenalty(t *testing.T) {
	tests := []struct {
		planDays int
		rate     float64
	}{
		{30, 22.0},
		{45, 20.0},
		{50, 18.0},
	}

	for _, tt := range tests {
		r := mustRental(t, tt.planDays, tt.planDays)
		got := TotalValue(r, day(tt.planDays-10))
		assert.Equal(t, float64(tt.planDays-10)*tt.rate, got)
	}
}

func TestTotalValueUnknownPlanRatesZero(t *testing.T) {
	r := mustRental(t, 12, 7)
	require.Equal(t, PlanUnknown, r.Plan)

	assert.Equal(t, 0.0, TotalValue(r, day(7)))
	// extensions still bill the flat surcharge even without a known rate
	assert.Equal(t, 2*50.0, TotalValue(r, day(9)))
}

func TestTotalValueTruncatesPartialDays(t *testing.T) {
	r := mustRental(t, 7, 7)
	// 6 days and 20 hours counts as 6 billable days, and the 4 hour gap to
	// the contracted end is not a whole early day
	almostSeven := day(7).Add(-4 * time.Hour)
	got := TotalValue(r, almostSeven)
	assert.Equal(t, 6*30.0, got)
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanDays7, ParsePlan(7))
	assert.Equal(t, PlanDays50, ParsePlan(50))
	assert.Equal(t, PlanUnknown, ParsePlan(0))
	assert.Equal(t, PlanUnknown, ParsePlan(14))
}

func TestPlanDailyRates(t *testing.T) {
	assert.Equal(t, 30.0, PlanDays7.DailyRate())
	assert.Equal(t, 28.0, PlanDays15.DailyRate())
	assert.Equal(t, 22.0, PlanDays30.DailyRate())
	assert.Equal(t, 20.0, PlanDays45.DailyRate())
	assert.Equal(t, 18.0, PlanDays50.DailyRate())
	assert.Equal(t, 0.0, PlanUnknown.DailyRate())
}
