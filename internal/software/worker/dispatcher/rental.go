package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/contracts"
	"rental-manager/internal/ports"
)

type rentalWirePayload struct {
	ID               string    `json:"id"`
	DeliveryPersonID string    `json:"delivery_person_id"`
	MotorbikeID      string    `json:"motorbike_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ExpectedEndDate  time.Time `json:"expected_end_date"`
	Plan             int       `json:"plan"`
}

// RunRentalCommands consumes the rental command queue.
func (disp *Dispatcher) RunRentalCommands(ctx context.Context) error {
	return disp.mq.Consume(ctx, contracts.QueueRentalCommands, "rental-commands", 1, disp.handleRentalCommand)
}

// RunRentalRequests consumes the rental request queue.
func (disp *Dispatcher) RunRentalRequests(ctx context.Context) error {
	return disp.mq.Consume(ctx, contracts.QueueRentalRequests, "rental-requests", 1, func(ctx context.Context, d amqp.Delivery) bool {
		return disp.handleRequest(ctx, d, disp.execRentalRequest)
	})
}

func (disp *Dispatcher) handleRentalCommand(ctx context.Context, delivery amqp.Delivery) bool {
	msg, err := contracts.DecodeOperationMessage(delivery.Body)
	if err != nil {
		disp.log.Error(ctx, "command_decode_failed", "Undeliverable command envelope", err,
			map[string]any{"routing_key": delivery.RoutingKey})
		return false
	}

	if msg.Operation != contracts.OpCreate {
		disp.log.Error(ctx, "command_unknown_operation", "No handler for rental operation", nil,
			map[string]any{"operation": msg.Operation})
		return false
	}

	var wire rentalWirePayload
	if err := json.Unmarshal(msg.Payload, &wire); err != nil {
		disp.log.Error(ctx, "command_payload_invalid", "Rental payload not decodable", err, nil)
		return false
	}

	r, err := rental.New(
		wire.ID,
		wire.DeliveryPersonID,
		wire.MotorbikeID,
		wire.StartDate,
		wire.EndDate,
		wire.ExpectedEndDate,
		rental.ParsePlan(wire.Plan),
	)
	if err != nil {
		disp.log.Error(ctx, "rental_command_invalid", "Rental request rejected", err,
			map[string]any{"rental_id": wire.ID})
		return false
	}

	ctx = disp.log.WithRentalID(ctx, r.ID)
	if err := disp.rentals.Create(ctx, r); err != nil {
		disp.log.Error(ctx, "rental_command_failed", "Rental not created", err,
			map[string]any{"motorbike_id": r.MotorbikeID, "delivery_person_id": r.DeliveryPersonID})
	} else {
		disp.log.Info(ctx, "rental_command_handled", "Rental created",
			map[string]any{"motorbike_id": r.MotorbikeID, "plan": r.Plan.Days()})
	}

	// commands are never retried
	return false
}

func (disp *Dispatcher) execRentalRequest(ctx context.Context, operation string, payload json.RawMessage) (any, error) {
	switch operation {
	case contracts.OpGetByID:
		var q struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &q); err != nil {
			return nil, fmt.Errorf("invalid rental query: %w", err)
		}
		return disp.rentals.GetByID(ctx, q.ID)

	case contracts.OpUpdate:
		var upd ports.UpdateRentalPayload
		if err := json.Unmarshal(payload, &upd); err != nil {
			return nil, fmt.Errorf("invalid rental update: %w", err)
		}
		newEnd, err := parseWireDate(upd.ExpectedEndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid expected_end_date: %w", err)
		}
		return disp.rentals.AmendExpectedEndDate(ctx, upd.ID, newEnd)

	default:
		return nil, fmt.Errorf("unsupported rental operation %q", operation)
	}
}
