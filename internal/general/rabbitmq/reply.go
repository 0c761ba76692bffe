package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReplyHandler receives every response delivered to the private reply queue.
// correlationID comes from the AMQP property when set, otherwise the handler
// must dig it out of the body.
type ReplyHandler func(correlationID string, body []byte)

// ConsumeReplies declares an exclusive, server-named queue for this client
// and feeds every delivery on it to handler. The queue is ephemeral: it dies
// with the connection, so after a reconnect a fresh queue (with a new name)
// is declared and onReady is invoked again with the new name. Blocks until
// ctx is cancelled.
func (client *Client) ConsumeReplies(
	ctx context.Context,
	onReady func(queueName string),
	handler ReplyHandler,
) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		ch, err := client.newConsumerChannel(0)
		if err != nil {
			client.logger.Error(client.logCtx, "reply_channel_failed", "Failed to open reply channel", err, nil)
			if !sleepOrDone(ctx, time.Second) {
				return nil
			}
			continue
		}

		// server-named, exclusive, auto-delete: scoped to this client instance
		q, err := ch.QueueDeclare("", false, true, true, false, nil)
		if err != nil {
			client.logger.Error(client.logCtx, "reply_queue_declare_failed", "Failed to declare reply queue", err, nil)
			_ = ch.Close()
			if !sleepOrDone(ctx, time.Second) {
				return nil
			}
			continue
		}

		// autoAck: a lost reply is indistinguishable from a timeout for the
		// caller, so there is nothing useful to do with a redelivery
		deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
		if err != nil {
			client.logger.Error(client.logCtx, "reply_consume_failed", "Failed to consume reply queue", err, nil)
			_ = ch.Close()
			if !sleepOrDone(ctx, time.Second) {
				return nil
			}
			continue
		}

		onReady(q.Name)
		client.logger.Info(client.logCtx, "reply_queue_ready", "Private reply queue declared", map[string]any{
			"queue": q.Name,
		})

		if done := client.pumpReplies(ctx, ch, deliveries, handler); done {
			_ = ch.Close()
			return nil
		}
		_ = ch.Close()
		// channel died; loop to re-declare on the (re)connected client
		if !sleepOrDone(ctx, time.Second) {
			return nil
		}
	}
}

// pumpReplies drains deliveries until ctx is done (returns true) or the
// channel closes (returns false).
func (client *Client) pumpReplies(
	ctx context.Context,
	ch *amqp.Channel,
	deliveries <-chan amqp.Delivery,
	handler ReplyHandler,
) bool {
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			return true
		case <-chClosed:
			return false
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			handler(d.CorrelationId, d.Body)
		}
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
