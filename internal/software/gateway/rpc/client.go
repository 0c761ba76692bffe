package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rental-manager/internal/general/contracts"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// replyTimeout is the fixed window a call waits for its reply before the
// correlation entry is discarded.
const replyTimeout = 32 * time.Second

// Client turns the message bus into a blocking request/reply surface. Each
// Call mints a correlation id, registers a completion handle, publishes a
// RequestMessage addressed to the client's private reply queue, and waits
// until the reply consumer resolves the handle or the window expires.
type Client struct {
	log      *logger.Logger
	pub      ports.MessagePublisher
	registry *Registry
	timeout  time.Duration

	mu         sync.RWMutex
	replyQueue string
}

// NewClient builds a client publishing requests through pub. The reply
// queue name arrives later via SetReplyQueue once the consumer has declared
// its server-named queue.
func NewClient(log *logger.Logger, pub ports.MessagePublisher) *Client {
	return &Client{
		log:      log,
		pub:      pub,
		registry: NewRegistry(),
		timeout:  replyTimeout,
	}
}

// SetReplyQueue records the name of the private reply queue. Called again
// with a fresh name after a broker reconnect.
func (c *Client) SetReplyQueue(name string) {
	c.mu.Lock()
	c.replyQueue = name
	c.mu.Unlock()

	c.log.Info(context.Background(), "reply_queue_ready", "reply queue bound", map[string]any{
		"queue": name,
	})
}

func (c *Client) currentReplyQueue() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.replyQueue
}

// HandleReply is the reply consumer callback. It resolves the pending call
// matching the delivery's correlation id; replies with no pending entry are
// dropped.
func (c *Client) HandleReply(correlationID string, body []byte) {
	if strings.TrimSpace(correlationID) == "" {
		// some publishers only set correlation_id in the body
		var probe struct {
			CorrelationID string `json:"correlation_id"`
		}
		if err := json.Unmarshal(body, &probe); err == nil {
			correlationID = probe.CorrelationID
		}
	}

	if correlationID == "" {
		c.log.Debug(context.Background(), "reply_unaddressed", "reply without correlation id dropped", nil)
		return
	}

	if !c.registry.Resolve(correlationID, body) {
		c.log.Debug(context.Background(), "reply_dropped", "late or unknown reply dropped", map[string]any{
			"correlation_id": correlationID,
		})
	}
}

// Call publishes a request for operation on entityType and blocks until the
// reply arrives, the window expires, or ctx is cancelled. On success the
// reply payload is unmarshalled into out (which may be nil when the caller
// only needs the ack).
func (c *Client) Call(ctx context.Context, entityType, operation string, payload any, out any) error {
	replyTo := c.currentReplyQueue()
	if replyTo == "" {
		return fmt.Errorf("%w: reply queue not ready", ErrTransport)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rpc: marshal payload: %w", err)
	}

	correlationID := uuid.NewString()

	handle, ok := c.registry.Register(correlationID)
	if !ok {
		return ErrShutdown
	}

	req := contracts.RequestMessage{
		Operation:     operation,
		Payload:       raw,
		CorrelationID: correlationID,
		ReplyTo:       replyTo,
	}
	body, err := json.Marshal(req)
	if err != nil {
		c.registry.Discard(correlationID)
		return fmt.Errorf("rpc: marshal request: %w", err)
	}

	routingKey := contracts.RoutingKey(entityType, operation)
	if err := c.pub.Publish(contracts.ExchangeRentalManager, routingKey, body); err != nil {
		c.registry.Discard(correlationID)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.log.Debug(ctx, "rpc_call_sent", "request published", map[string]any{
		"routing_key":    routingKey,
		"correlation_id": correlationID,
	})

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.registry.Discard(correlationID)
		return ctx.Err()

	case <-timer.C:
		c.registry.Discard(correlationID)
		c.log.Error(ctx, "rpc_call_timeout", "no reply within window", ErrTimeout, map[string]any{
			"routing_key":    routingKey,
			"correlation_id": correlationID,
		})
		return ErrTimeout

	case replyBody, open := <-handle:
		if !open {
			return ErrShutdown
		}
		return decodeReply(replyBody, out)
	}
}

// Shutdown fails all in-flight calls and rejects new ones.
func (c *Client) Shutdown() {
	c.registry.Shutdown()
}

func decodeReply(body []byte, out any) error {
	var resp contracts.ResponseMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if !resp.Success {
		msg := resp.Error
		if strings.TrimSpace(msg) == "" {
			msg = "unspecified failure"
		}
		return &RemoteError{Message: msg}
	}

	if out == nil {
		return nil
	}
	if len(resp.Payload) == 0 {
		return fmt.Errorf("%w: success reply without payload", ErrDecode)
	}
	if err := json.Unmarshal(resp.Payload, out); err != nil {
		return fmt.Errorf("%w: payload: %v", ErrDecode, err)
	}
	return nil
}
