package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-manager/internal/domain/rental"
	"rental-manager/internal/ports"

	"github.com/jackc/pgx/v5"
)

// RentalRepo persists rentals using pgx and plain SQL.
type RentalRepo struct{}

// NewRentalRepo constructs a new RentalRepo.
func NewRentalRepo() ports.RentalRepository {
	return &RentalRepo{}
}

// Create inserts a new rental row. The plan is stored as its day count.
func (repo *RentalRepo) Create(ctx context.Context, r *rental.Rental) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rental_manager.rental (
			id, delivery_man_id, motorbike_id, start_date, end_date, expected_end_date, rental_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.DeliveryPersonID, r.MotorbikeID, r.StartDate, r.EndDate, r.ExpectedEndDate, r.Plan.Days())
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}

	return nil
}

// GetByID fetches a rental by primary key.
func (repo *RentalRepo) GetByID(ctx context.Context, id string) (*rental.Rental, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out rental.Rental
	var planDays int
	err = tx.QueryRow(ctx, `
		SELECT id, delivery_man_id, motorbike_id, start_date, end_date, expected_end_date, rental_type
		FROM rental_manager.rental
		WHERE id = $1
	`, id).Scan(&out.ID, &out.DeliveryPersonID, &out.MotorbikeID, &out.StartDate, &out.EndDate, &out.ExpectedEndDate, &planDays)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rental.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query rental by id: %w", err)
	}
	out.Plan = rental.ParsePlan(planDays)

	return &out, nil
}

// ExistsForMotorbike reports whether any rental row references the motorbike.
// The invariant is "at most one rental per motorbike", not date-range overlap.
func (repo *RentalRepo) ExistsForMotorbike(ctx context.Context, motorbikeID string) (bool, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM rental_manager.rental WHERE motorbike_id = $1
		)
	`, motorbikeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query rentals for motorbike: %w", err)
	}

	return exists, nil
}

// UpdateExpectedEndDate amends the expected end date of an existing rental.
func (repo *RentalRepo) UpdateExpectedEndDate(ctx context.Context, id string, expectedEndDate time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE rental_manager.rental
		SET expected_end_date = $2
		WHERE id = $1
	`, id, expectedEndDate)
	if err != nil {
		return fmt.Errorf("update rental expected end date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rental.ErrNotFound
	}

	return nil
}
