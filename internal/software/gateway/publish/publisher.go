package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"rental-manager/internal/general/contracts"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// CommandPublisher sends fire-and-forget OperationMessage envelopes. The
// caller gets an error only when the message could not be handed to the
// broker; what the worker does with it afterwards is not reported back.
type CommandPublisher struct {
	log *logger.Logger
	pub ports.MessagePublisher
}

func NewCommandPublisher(log *logger.Logger, pub ports.MessagePublisher) *CommandPublisher {
	return &CommandPublisher{log: log, pub: pub}
}

// Send wraps payload in an OperationMessage and publishes it to the topic
// exchange under "<entityType>.<operation>".
func (p *CommandPublisher) Send(ctx context.Context, entityType, operation string, payload any) error {
	msg, err := contracts.NewOperationMessage(operation, entityType, payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("publish: marshal envelope: %w", err)
	}

	routingKey := contracts.RoutingKey(entityType, operation)
	if err := p.pub.Publish(contracts.ExchangeRentalManager, routingKey, body); err != nil {
		p.log.Error(ctx, "command_publish_failed", "command not delivered to broker", err, map[string]any{
			"routing_key": routingKey,
		})
		return err
	}

	p.log.Info(ctx, "command_published", "command accepted by broker", map[string]any{
		"routing_key": routingKey,
	})
	return nil
}
