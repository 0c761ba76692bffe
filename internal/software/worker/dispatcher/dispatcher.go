package dispatcher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"rental-manager/internal/general/contracts"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// queueConsumer consumes a queue sequentially with manual acks. The handler
// return value decides the disposition: true acks, false rejects without
// requeue.
type queueConsumer interface {
	Consume(ctx context.Context, queue, consumerTag string, prefetch int, handler func(context.Context, amqp.Delivery) bool) error
}

// Dispatcher routes deliveries from the worker queues to the entity
// services. Command queues are fire-and-forget: every delivery is rejected
// without requeue once handled, success or not, and failures surface only
// in the logs. Request queues send exactly one reply per delivery and
// acknowledge after the reply is published.
type Dispatcher struct {
	log        *logger.Logger
	mq         queueConsumer
	replies    ports.ReplyPublisher
	motorbikes ports.MotorbikeService
	people     ports.DeliveryPersonService
	rentals    ports.RentalService
}

func NewDispatcher(
	log *logger.Logger,
	mq queueConsumer,
	replies ports.ReplyPublisher,
	motorbikes ports.MotorbikeService,
	people ports.DeliveryPersonService,
	rentals ports.RentalService,
) *Dispatcher {
	return &Dispatcher{
		log:        log,
		mq:         mq,
		replies:    replies,
		motorbikes: motorbikes,
		people:     people,
		rentals:    rentals,
	}
}

// requestExec runs one request operation and returns the reply payload.
type requestExec func(ctx context.Context, operation string, payload json.RawMessage) (any, error)

// handleRequest decodes a request envelope, executes it, and publishes the
// reply to the caller's private queue. A malformed envelope still gets a
// best-effort error reply when its reply address can be salvaged.
func (disp *Dispatcher) handleRequest(ctx context.Context, delivery amqp.Delivery, exec requestExec) bool {
	req, err := contracts.DecodeRequestMessage(delivery.Body)
	if err != nil {
		disp.log.Error(ctx, "request_decode_failed", "Undeliverable request envelope", err,
			map[string]any{"routing_key": delivery.RoutingKey})

		if correlationID, replyTo, ok := contracts.ExtractReplyAddress(delivery.Body); ok {
			disp.sendReply(ctx, replyTo, contracts.ErrResponse(correlationID, "malformed request"))
		}
		return false
	}

	var resp contracts.ResponseMessage
	result, err := exec(ctx, req.Operation, req.Payload)
	if err != nil {
		disp.log.Error(ctx, "request_failed", "Request operation failed", err,
			map[string]any{"operation": req.Operation, "correlation_id": req.CorrelationID})
		resp = contracts.ErrResponse(req.CorrelationID, err.Error())
	} else {
		resp, err = contracts.OkResponse(req.CorrelationID, result)
		if err != nil {
			disp.log.Error(ctx, "reply_encode_failed", "Reply payload not encodable", err,
				map[string]any{"operation": req.Operation, "correlation_id": req.CorrelationID})
			resp = contracts.ErrResponse(req.CorrelationID, "internal error")
		}
	}

	return disp.sendReply(ctx, req.ReplyTo, resp)
}

// sendReply publishes resp to replyTo through the default exchange.
func (disp *Dispatcher) sendReply(ctx context.Context, replyTo string, resp contracts.ResponseMessage) bool {
	body, err := json.Marshal(resp)
	if err != nil {
		disp.log.Error(ctx, "reply_encode_failed", "Reply envelope not encodable", err, nil)
		return false
	}

	if err := disp.replies.PublishReply(replyTo, resp.CorrelationID, body); err != nil {
		disp.log.Error(ctx, "reply_publish_failed", "Reply not delivered", err,
			map[string]any{"reply_to": replyTo, "correlation_id": resp.CorrelationID})
		return false
	}
	return true
}

// parseWireDate accepts RFC 3339 timestamps and bare dates.
func parseWireDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
