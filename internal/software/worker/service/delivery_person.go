package service

import (
	"context"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// DeliveryPersonService executes the persistent side of delivery person
// operations.
type DeliveryPersonService struct {
	log    *logger.Logger
	uow    ports.UnitOfWork
	people ports.DeliveryPersonRepository
}

func NewDeliveryPersonService(log *logger.Logger, uow ports.UnitOfWork, people ports.DeliveryPersonRepository) *DeliveryPersonService {
	return &DeliveryPersonService{log: log, uow: uow, people: people}
}

// Create persists a newly registered delivery person.
func (s *DeliveryPersonService) Create(ctx context.Context, p *deliveryperson.DeliveryPerson) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.people.Create(ctx, p)
	})
}
