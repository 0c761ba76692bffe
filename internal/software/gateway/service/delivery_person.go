package service

import (
	"context"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/general/contracts"
)

// CreateDeliveryPerson publishes the registration command.
func (s *GatewayService) CreateDeliveryPerson(ctx context.Context, p *deliveryperson.DeliveryPerson) error {
	return s.commands.Send(ctx, contracts.EntityDeliveryMan, contracts.OpCreate, p)
}
