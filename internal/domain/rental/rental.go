package rental

import (
	"errors"
	"strings"
	"time"
)

// Rental is the domain entity corresponding to the `rental` table. A
// motorbike has at most one rental row at a time; creation is refused while
// another rental references the same motorbike.
type Rental struct {
	ID               string    `json:"id"`
	DeliveryPersonID string    `json:"delivery_person_id"`
	MotorbikeID      string    `json:"motorbike_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ExpectedEndDate  time.Time `json:"expected_end_date"`
	Plan             Plan      `json:"plan"`
}

var (
	ErrNotFound               = errors.New("rental not found")
	ErrIDRequired             = errors.New("rental id is required")
	ErrDeliveryPersonRequired = errors.New("delivery person id is required")
	ErrMotorbikeRequired      = errors.New("motorbike id is required")
	ErrEndBeforeStart         = errors.New("expected end date precedes start date")
	ErrIneligibleLicense      = errors.New("delivery person license category is not eligible for motorbikes")
	ErrMotorbikeAlreadyRented = errors.New("motorbike is already being rented")
)

// New validates and builds a rental.
func New(id, deliveryPersonID, motorbikeID string, startDate, endDate, expectedEndDate time.Time, plan Plan) (*Rental, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, ErrIDRequired
	}
	if deliveryPersonID = strings.TrimSpace(deliveryPersonID); deliveryPersonID == "" {
		return nil, ErrDeliveryPersonRequired
	}
	if motorbikeID = strings.TrimSpace(motorbikeID); motorbikeID == "" {
		return nil, ErrMotorbikeRequired
	}
	if expectedEndDate.Before(startDate) {
		return nil, ErrEndBeforeStart
	}
	if !plan.Valid() {
		plan = PlanUnknown
	}

	return &Rental{
		ID:               id,
		DeliveryPersonID: deliveryPersonID,
		MotorbikeID:      motorbikeID,
		StartDate:        startDate,
		EndDate:          endDate,
		ExpectedEndDate:  expectedEndDate,
		Plan:             plan,
	}, nil
}

// Snapshot returns a copy of the rental as it stands. Used to report the
// pre-amendment state back to the caller of a return-date update.
func (r *Rental) Snapshot() Rental {
	return *r
}
