package service

import (
	"context"
	"time"

	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/contracts"
	"rental-manager/internal/ports"
)

type createRentalPayload struct {
	ID               string    `json:"id"`
	DeliveryPersonID string    `json:"delivery_person_id"`
	MotorbikeID      string    `json:"motorbike_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ExpectedEndDate  time.Time `json:"expected_end_date"`
	Plan             int       `json:"plan"`
}

type rentalIDQuery struct {
	ID string `json:"id"`
}

// CreateRental publishes the rental command. Eligibility and availability
// are enforced worker-side; a refused rental is only visible in the worker
// logs.
func (s *GatewayService) CreateRental(ctx context.Context, in ports.CreateRentalInput) error {
	payload := createRentalPayload{
		ID:               in.ID,
		DeliveryPersonID: in.DeliveryPersonID,
		MotorbikeID:      in.MotorbikeID,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		ExpectedEndDate:  in.ExpectedEndDate,
		Plan:             in.PlanDays,
	}
	return s.commands.Send(ctx, contracts.EntityRental, contracts.OpCreate, payload)
}

// GetRentalByID fetches one rental from the worker tier.
func (s *GatewayService) GetRentalByID(ctx context.Context, id string) (rental.Rental, error) {
	var out rental.Rental
	if err := s.rpc.Call(ctx, contracts.EntityRental, contracts.OpGetByID, rentalIDQuery{ID: id}, &out); err != nil {
		return rental.Rental{}, err
	}
	return out, nil
}

// AmendRentalReturnDate asks the worker to move the expected end date and
// returns the pre-amendment snapshot together with the priced total.
func (s *GatewayService) AmendRentalReturnDate(ctx context.Context, id string, returnDate time.Time) (ports.AmendReturnDateResult, error) {
	payload := ports.UpdateRentalPayload{
		ID:              id,
		ExpectedEndDate: returnDate.UTC().Format(time.RFC3339),
	}

	var out ports.AmendReturnDateResult
	if err := s.rpc.Call(ctx, contracts.EntityRental, contracts.OpUpdate, payload, &out); err != nil {
		return ports.AmendReturnDateResult{}, err
	}
	return out, nil
}
