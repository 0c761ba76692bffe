package dispatcher

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/general/contracts"
)

// RunDeliveryPersonCommands consumes the delivery person command queue.
func (disp *Dispatcher) RunDeliveryPersonCommands(ctx context.Context) error {
	return disp.mq.Consume(ctx, contracts.QueueDeliveryManCommands, "delivery-man-commands", 1, disp.handleDeliveryPersonCommand)
}

func (disp *Dispatcher) handleDeliveryPersonCommand(ctx context.Context, delivery amqp.Delivery) bool {
	msg, err := contracts.DecodeOperationMessage(delivery.Body)
	if err != nil {
		disp.log.Error(ctx, "command_decode_failed", "Undeliverable command envelope", err,
			map[string]any{"routing_key": delivery.RoutingKey})
		return false
	}

	if msg.Operation != contracts.OpCreate {
		disp.log.Error(ctx, "command_unknown_operation", "No handler for delivery person operation", nil,
			map[string]any{"operation": msg.Operation})
		return false
	}

	var p deliveryperson.DeliveryPerson
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		disp.log.Error(ctx, "command_payload_invalid", "Delivery person payload not decodable", err, nil)
		return false
	}

	if err := disp.people.Create(ctx, &p); err != nil {
		disp.log.Error(ctx, "delivery_person_command_failed", "Delivery person not registered", err,
			map[string]any{"delivery_person_id": p.ID})
	} else {
		disp.log.Info(ctx, "delivery_person_command_handled", "Delivery person registered",
			map[string]any{"delivery_person_id": p.ID})
	}

	// commands are never retried
	return false
}
