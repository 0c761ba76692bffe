package service

import (
	"context"
	"time"

	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// RentalService enforces rental eligibility and availability on creation
// and prices return-date amendments.
type RentalService struct {
	log        *logger.Logger
	uow        ports.UnitOfWork
	rentals    ports.RentalRepository
	motorbikes ports.MotorbikeRepository
	people     ports.DeliveryPersonRepository
}

func NewRentalService(
	log *logger.Logger,
	uow ports.UnitOfWork,
	rentals ports.RentalRepository,
	motorbikes ports.MotorbikeRepository,
	people ports.DeliveryPersonRepository,
) *RentalService {
	return &RentalService{log: log, uow: uow, rentals: rentals, motorbikes: motorbikes, people: people}
}

// Create persists a rental after checking that the delivery person exists
// and holds an A or AB license, the motorbike exists, and no other rental
// references the same motorbike.
func (s *RentalService) Create(ctx context.Context, r *rental.Rental) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		person, err := s.people.GetByID(ctx, r.DeliveryPersonID)
		if err != nil {
			return err
		}
		if !person.LicenseCategory.EligibleForMotorbike() {
			return rental.ErrIneligibleLicense
		}

		if _, err := s.motorbikes.GetByID(ctx, r.MotorbikeID); err != nil {
			return err
		}

		taken, err := s.rentals.ExistsForMotorbike(ctx, r.MotorbikeID)
		if err != nil {
			return err
		}
		if taken {
			return rental.ErrMotorbikeAlreadyRented
		}

		return s.rentals.Create(ctx, r)
	})
}

// GetByID fetches one rental.
func (s *RentalService) GetByID(ctx context.Context, id string) (*rental.Rental, error) {
	var out *rental.Rental
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.rentals.GetByID(ctx, id)
		return err
	})
	return out, err
}

// AmendExpectedEndDate moves the expected end date of a rental and prices
// the change. The returned snapshot reflects the rental as it stood before
// the amendment; only the total reflects the new date.
func (s *RentalService) AmendExpectedEndDate(ctx context.Context, id string, newExpectedEnd time.Time) (ports.AmendReturnDateResult, error) {
	var result ports.AmendReturnDateResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}

		snapshot := r.Snapshot()
		total := rental.TotalValue(r, newExpectedEnd)

		if err := s.rentals.UpdateExpectedEndDate(ctx, id, newExpectedEnd); err != nil {
			return err
		}

		result = ports.AmendReturnDateResult{Rental: snapshot, TotalValue: total}
		return nil
	})
	if err != nil {
		return ports.AmendReturnDateResult{}, err
	}

	s.log.Info(s.log.WithRentalID(ctx, id), "rental_return_priced", "Return date amended and priced",
		map[string]any{"total_value": result.TotalValue})

	return result, nil
}
