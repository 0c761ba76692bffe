package service

import (
	"context"

	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// MotorbikeService executes the persistent side of motorbike operations.
// Writes run inside a unit-of-work transaction; the repositories pick the
// transaction up from the context.
type MotorbikeService struct {
	log        *logger.Logger
	uow        ports.UnitOfWork
	motorbikes ports.MotorbikeRepository
	rentals    ports.RentalRepository
}

func NewMotorbikeService(
	log *logger.Logger,
	uow ports.UnitOfWork,
	motorbikes ports.MotorbikeRepository,
	rentals ports.RentalRepository,
) *MotorbikeService {
	return &MotorbikeService{log: log, uow: uow, motorbikes: motorbikes, rentals: rentals}
}

// Create persists a newly registered motorbike.
func (s *MotorbikeService) Create(ctx context.Context, m *motorbike.Motorbike) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.motorbikes.Create(ctx, m)
	})
}

// Update changes the plate of an existing motorbike.
func (s *MotorbikeService) Update(ctx context.Context, m *motorbike.Motorbike) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.motorbikes.UpdatePlate(ctx, m.ID, m.Plate)
	})
}

// Delete removes a motorbike unless a rental still references it.
func (s *MotorbikeService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		rented, err := s.rentals.ExistsForMotorbike(ctx, id)
		if err != nil {
			return err
		}
		if rented {
			return motorbike.ErrStillRented
		}
		return s.motorbikes.Delete(ctx, id)
	})
}

// Notify2024 records the arrival of a 2024 model. The notification carries
// no further side effects today; it exists so current-year fleet consumers
// have a hook.
func (s *MotorbikeService) Notify2024(ctx context.Context, m *motorbike.Motorbike) {
	s.log.Info(ctx, "motorbike_2024_registered", "2024 model motorbike registered",
		map[string]any{"motorbike_id": m.ID, "model": m.Model, "plate": m.Plate})
}

// List returns the full fleet.
func (s *MotorbikeService) List(ctx context.Context) ([]*motorbike.Motorbike, error) {
	var out []*motorbike.Motorbike
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.motorbikes.List(ctx)
		return err
	})
	return out, err
}

// GetByPlate looks a motorbike up by plate.
func (s *MotorbikeService) GetByPlate(ctx context.Context, plate string) (*motorbike.Motorbike, error) {
	var out *motorbike.Motorbike
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.motorbikes.GetByPlate(ctx, plate)
		return err
	})
	return out, err
}
