package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/general/contracts"
)

// RunMotorbikeCommands consumes the motorbike command queue until ctx is
// cancelled or the channel fails.
func (disp *Dispatcher) RunMotorbikeCommands(ctx context.Context) error {
	return disp.mq.Consume(ctx, contracts.QueueMotorbikeCommands, "motorbike-commands", 1, disp.handleMotorbikeCommand)
}

// RunMotorbikeRequests consumes the motorbike request queue.
func (disp *Dispatcher) RunMotorbikeRequests(ctx context.Context) error {
	return disp.mq.Consume(ctx, contracts.QueueMotorbikeRequests, "motorbike-requests", 1, func(ctx context.Context, d amqp.Delivery) bool {
		return disp.handleRequest(ctx, d, disp.execMotorbikeRequest)
	})
}

func (disp *Dispatcher) handleMotorbikeCommand(ctx context.Context, delivery amqp.Delivery) bool {
	msg, err := contracts.DecodeOperationMessage(delivery.Body)
	if err != nil {
		disp.log.Error(ctx, "command_decode_failed", "Undeliverable command envelope", err,
			map[string]any{"routing_key": delivery.RoutingKey})
		return false
	}

	var m motorbike.Motorbike
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		disp.log.Error(ctx, "command_payload_invalid", "Motorbike payload not decodable", err,
			map[string]any{"operation": msg.Operation})
		return false
	}

	switch msg.Operation {
	case contracts.OpCreate:
		err = disp.motorbikes.Create(ctx, &m)
	case contracts.OpUpdate:
		err = disp.motorbikes.Update(ctx, &m)
	case contracts.OpDelete:
		err = disp.motorbikes.Delete(ctx, m.ID)
	case contracts.OpIs2024:
		disp.motorbikes.Notify2024(ctx, &m)
	default:
		disp.log.Error(ctx, "command_unknown_operation", "No handler for motorbike operation", nil,
			map[string]any{"operation": msg.Operation})
	}

	if err != nil {
		disp.log.Error(ctx, "motorbike_command_failed", "Motorbike command not applied", err,
			map[string]any{"operation": msg.Operation, "motorbike_id": m.ID})
	} else {
		disp.log.Info(ctx, "motorbike_command_handled", "Motorbike command processed",
			map[string]any{"operation": msg.Operation, "motorbike_id": m.ID})
	}

	// commands are never retried
	return false
}

func (disp *Dispatcher) execMotorbikeRequest(ctx context.Context, operation string, payload json.RawMessage) (any, error) {
	switch operation {
	case contracts.OpGet:
		return disp.motorbikes.List(ctx)

	case contracts.OpGetByPlate:
		var q struct {
			Plate string `json:"plate"`
		}
		if err := json.Unmarshal(payload, &q); err != nil {
			return nil, fmt.Errorf("invalid plate query: %w", err)
		}
		return disp.motorbikes.GetByPlate(ctx, q.Plate)

	default:
		return nil, fmt.Errorf("unsupported motorbike operation %q", operation)
	}
}
