package ports

import (
	"context"
	"time"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/domain/rental"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MotorbikeRepository defines the methods for managing motorbike rows.
type MotorbikeRepository interface {
	Create(ctx context.Context, m *motorbike.Motorbike) error
	GetByID(ctx context.Context, id string) (*motorbike.Motorbike, error)
	GetByPlate(ctx context.Context, plate string) (*motorbike.Motorbike, error)
	List(ctx context.Context) ([]*motorbike.Motorbike, error)
	UpdatePlate(ctx context.Context, id, plate string) error
	Delete(ctx context.Context, id string) error
}

// DeliveryPersonRepository defines the methods for managing delivery person rows.
type DeliveryPersonRepository interface {
	Create(ctx context.Context, p *deliveryperson.DeliveryPerson) error
	GetByID(ctx context.Context, id string) (*deliveryperson.DeliveryPerson, error)
}

// RentalRepository defines the methods for managing rental rows.
type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) error
	GetByID(ctx context.Context, id string) (*rental.Rental, error)
	ExistsForMotorbike(ctx context.Context, motorbikeID string) (bool, error)
	UpdateExpectedEndDate(ctx context.Context, id string, expectedEndDate time.Time) error
}
