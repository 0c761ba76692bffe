package rabbitmq

import (
	"fmt"

	"rental-manager/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

func declareTopology(ch *amqp.Channel) error {
	// 1. Exchange: a single topic exchange routes "<entity>.<operation>" keys.
	if err := ch.ExchangeDeclare(contracts.ExchangeRentalManager, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeRentalManager, err)
	}

	// 2. Queues (durable; the RPC reply queues are exclusive, declared per client).
	queues := []string{
		contracts.QueueMotorbikeCommands,
		contracts.QueueMotorbikeRequests,
		contracts.QueueDeliveryManCommands,
		contracts.QueueRentalCommands,
		contracts.QueueRentalRequests,
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	// 3. Bindings
	bindings := []struct {
		queue      string
		routingKey string
	}{
		{contracts.QueueMotorbikeCommands, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpCreate)},
		{contracts.QueueMotorbikeCommands, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpUpdate)},
		{contracts.QueueMotorbikeCommands, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpDelete)},
		{contracts.QueueMotorbikeCommands, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpIs2024)},
		{contracts.QueueMotorbikeRequests, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpGet)},
		{contracts.QueueMotorbikeRequests, contracts.RoutingKey(contracts.EntityMotorbike, contracts.OpGetByPlate)},
		{contracts.QueueDeliveryManCommands, contracts.RoutingKey(contracts.EntityDeliveryMan, contracts.OpCreate)},
		{contracts.QueueRentalCommands, contracts.RoutingKey(contracts.EntityRental, contracts.OpCreate)},
		{contracts.QueueRentalRequests, contracts.RoutingKey(contracts.EntityRental, contracts.OpGetByID)},
		{contracts.QueueRentalRequests, contracts.RoutingKey(contracts.EntityRental, contracts.OpUpdate)},
	}

	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.routingKey, contracts.ExchangeRentalManager, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, contracts.ExchangeRentalManager, err)
		}
	}

	return nil
}
