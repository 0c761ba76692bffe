package ports

import (
	"context"
	"time"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/domain/rental"
)

// ----- Publisher ports -----

// MessagePublisher publishes a message body on an exchange with a topic
// routing key.
type MessagePublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ReplyPublisher delivers a response body straight to a caller-owned reply
// queue through the default exchange.
type ReplyPublisher interface {
	PublishReply(replyTo, correlationID string, body []byte) error
}

// ----- DTOs shared between gateway and worker -----

// AmendReturnDateResult is the reply payload of "rental.update": the rental
// snapshot as it stood before the amendment, plus the priced total.
type AmendReturnDateResult struct {
	rental.Rental
	TotalValue float64 `json:"total_value"`
}

// UpdateRentalPayload is the request payload of "rental.update".
type UpdateRentalPayload struct {
	ID              string `json:"id"`
	ExpectedEndDate string `json:"expected_end_date"`
}

// ----- Worker service interfaces -----

// MotorbikeService holds the worker-side motorbike operations.
type MotorbikeService interface {
	Create(ctx context.Context, m *motorbike.Motorbike) error
	Update(ctx context.Context, m *motorbike.Motorbike) error
	Delete(ctx context.Context, id string) error
	Notify2024(ctx context.Context, m *motorbike.Motorbike)
	List(ctx context.Context) ([]*motorbike.Motorbike, error)
	GetByPlate(ctx context.Context, plate string) (*motorbike.Motorbike, error)
}

// DeliveryPersonService holds the worker-side delivery person operations.
type DeliveryPersonService interface {
	Create(ctx context.Context, p *deliveryperson.DeliveryPerson) error
}

// RentalService holds the worker-side rental operations: eligibility and
// availability checks on create, proration pricing on return-date updates.
type RentalService interface {
	Create(ctx context.Context, r *rental.Rental) error
	GetByID(ctx context.Context, id string) (*rental.Rental, error)
	AmendExpectedEndDate(ctx context.Context, id string, newExpectedEnd time.Time) (AmendReturnDateResult, error)
}

// ----- Gateway service -----

// CreateRentalInput is the validated input required to request a rental.
type CreateRentalInput struct {
	ID               string
	DeliveryPersonID string
	MotorbikeID      string
	StartDate        time.Time
	EndDate          time.Time
	ExpectedEndDate  time.Time
	PlanDays         int
}

// GatewayService is the request-facing boundary: fire-and-forget commands
// and synchronous-looking queries satisfied over the message bus.
type GatewayService interface {
	CreateMotorbike(ctx context.Context, m *motorbike.Motorbike) error
	UpdateMotorbike(ctx context.Context, m *motorbike.Motorbike) error
	DeleteMotorbike(ctx context.Context, m *motorbike.Motorbike) error
	ListMotorbikes(ctx context.Context) ([]motorbike.Motorbike, error)
	GetMotorbikeByPlate(ctx context.Context, plate string) (motorbike.Motorbike, error)

	CreateDeliveryPerson(ctx context.Context, p *deliveryperson.DeliveryPerson) error

	CreateRental(ctx context.Context, in CreateRentalInput) error
	GetRentalByID(ctx context.Context, id string) (rental.Rental, error)
	AmendRentalReturnDate(ctx context.Context, id string, returnDate time.Time) (AmendReturnDateResult, error)
}
