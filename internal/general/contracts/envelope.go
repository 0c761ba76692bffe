package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDecode marks an envelope that could not be decoded from the wire.
var ErrDecode = errors.New("contracts: malformed envelope")

// OperationMessage is the fire-and-forget envelope. No reply is expected.
type OperationMessage struct {
	Operation  string          `json:"operation"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
	EntityType string          `json:"entity_type"`
}

// RequestMessage is the request/reply envelope. The caller mints the
// correlation id and names its private reply queue in reply_to.
type RequestMessage struct {
	Operation     string          `json:"operation"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlation_id"`
	ReplyTo       string          `json:"reply_to"`
}

// ResponseMessage carries exactly one reply per request, matched by
// correlation id.
type ResponseMessage struct {
	Success       bool            `json:"success"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Error         string          `json:"error,omitempty"`
	CorrelationID string          `json:"correlation_id"`
}

// RoutingKey builds the topic key "<entity_type>.<operation>".
func RoutingKey(entityType, operation string) string {
	return entityType + "." + operation
}

// NewOperationMessage wraps payload into a fire-and-forget envelope.
func NewOperationMessage(operation, entityType string, payload any) (OperationMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OperationMessage{}, fmt.Errorf("contracts: marshal payload: %w", err)
	}
	return OperationMessage{
		Operation:  operation,
		Payload:    raw,
		Timestamp:  time.Now().UTC(),
		EntityType: entityType,
	}, nil
}

// DecodeOperationMessage parses a fire-and-forget envelope off the wire.
func DecodeOperationMessage(body []byte) (OperationMessage, error) {
	var msg OperationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return OperationMessage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if strings.TrimSpace(msg.Operation) == "" {
		return OperationMessage{}, fmt.Errorf("%w: missing operation", ErrDecode)
	}
	return msg, nil
}

// DecodeRequestMessage parses a request envelope off the wire.
func DecodeRequestMessage(body []byte) (RequestMessage, error) {
	var msg RequestMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return RequestMessage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if strings.TrimSpace(msg.Operation) == "" {
		return RequestMessage{}, fmt.Errorf("%w: missing operation", ErrDecode)
	}
	if strings.TrimSpace(msg.CorrelationID) == "" || strings.TrimSpace(msg.ReplyTo) == "" {
		return RequestMessage{}, fmt.Errorf("%w: missing correlation_id or reply_to", ErrDecode)
	}
	return msg, nil
}

// ExtractReplyAddress pulls correlation_id and reply_to out of a raw body
// that failed full decoding, so the dispatcher can still send a best-effort
// error reply. Returns ok=false when either field is absent.
func ExtractReplyAddress(body []byte) (correlationID, replyTo string, ok bool) {
	var probe struct {
		CorrelationID string `json:"correlation_id"`
		ReplyTo       string `json:"reply_to"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", "", false
	}
	if probe.CorrelationID == "" || probe.ReplyTo == "" {
		return "", "", false
	}
	return probe.CorrelationID, probe.ReplyTo, true
}

// OkResponse builds a success reply carrying payload.
func OkResponse(correlationID string, payload any) (ResponseMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ResponseMessage{}, fmt.Errorf("contracts: marshal response payload: %w", err)
	}
	return ResponseMessage{Success: true, Payload: raw, CorrelationID: correlationID}, nil
}

// ErrResponse builds a failure reply carrying a human-readable message.
func ErrResponse(correlationID, message string) ResponseMessage {
	return ResponseMessage{Success: false, Error: message, CorrelationID: correlationID}
}
