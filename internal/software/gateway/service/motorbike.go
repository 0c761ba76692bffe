package service

import (
	"context"

	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/general/contracts"
)

// CreateMotorbike publishes the registration command. A 2024 model also
// gets a separate is2024 notification for the downstream consumers that
// track the current-year fleet.
func (s *GatewayService) CreateMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	if err := s.commands.Send(ctx, contracts.EntityMotorbike, contracts.OpCreate, m); err != nil {
		return err
	}

	if m.Is2024() {
		if err := s.commands.Send(ctx, contracts.EntityMotorbike, contracts.OpIs2024, m); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMotorbike publishes a plate change for an existing motorbike.
func (s *GatewayService) UpdateMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	return s.commands.Send(ctx, contracts.EntityMotorbike, contracts.OpUpdate, m)
}

// DeleteMotorbike publishes a removal command. The worker refuses it when
// a rental still references the motorbike; that refusal is not reported
// back here.
func (s *GatewayService) DeleteMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	return s.commands.Send(ctx, contracts.EntityMotorbike, contracts.OpDelete, m)
}

// ListMotorbikes asks the worker tier for the full fleet.
func (s *GatewayService) ListMotorbikes(ctx context.Context) ([]motorbike.Motorbike, error) {
	var out []motorbike.Motorbike
	if err := s.rpc.Call(ctx, contracts.EntityMotorbike, contracts.OpGet, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type plateQuery struct {
	Plate string `json:"plate"`
}

// GetMotorbikeByPlate looks a motorbike up by its plate.
func (s *GatewayService) GetMotorbikeByPlate(ctx context.Context, plate string) (motorbike.Motorbike, error) {
	var out motorbike.Motorbike
	if err := s.rpc.Call(ctx, contracts.EntityMotorbike, contracts.OpGetByPlate, plateQuery{Plate: plate}, &out); err != nil {
		return motorbike.Motorbike{}, err
	}
	return out, nil
}
