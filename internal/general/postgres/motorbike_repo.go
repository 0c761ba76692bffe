package postgres

import (
	"context"
	"errors"
	"fmt"

	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/ports"

	"github.com/jackc/pgx/v5"
)

// MotorbikeRepo persists motorbikes using pgx and plain SQL.
type MotorbikeRepo struct{}

// NewMotorbikeRepo constructs a new MotorbikeRepo.
func NewMotorbikeRepo() ports.MotorbikeRepository {
	return &MotorbikeRepo{}
}

// Create inserts a new motorbike row.
func (repo *MotorbikeRepo) Create(ctx context.Context, m *motorbike.Motorbike) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rental_manager.motorbike (id, year, model, plate)
		VALUES ($1, $2, $3, $4)
	`, m.ID, m.Year, m.Model, m.Plate)
	if err != nil {
		return fmt.Errorf("insert motorbike: %w", err)
	}

	return nil
}

// GetByID fetches a motorbike by primary key.
func (repo *MotorbikeRepo) GetByID(ctx context.Context, id string) (*motorbike.Motorbike, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out motorbike.Motorbike
	err = tx.QueryRow(ctx, `
		SELECT id, year, model, plate
		FROM rental_manager.motorbike
		WHERE id = $1
	`, id).Scan(&out.ID, &out.Year, &out.Model, &out.Plate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, motorbike.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query motorbike by id: %w", err)
	}

	return &out, nil
}

// GetByPlate fetches a motorbike by license plate.
func (repo *MotorbikeRepo) GetByPlate(ctx context.Context, plate string) (*motorbike.Motorbike, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out motorbike.Motorbike
	err = tx.QueryRow(ctx, `
		SELECT id, year, model, plate
		FROM rental_manager.motorbike
		WHERE plate = $1
	`, plate).Scan(&out.ID, &out.Year, &out.Model, &out.Plate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, motorbike.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query motorbike by plate: %w", err)
	}

	return &out, nil
}

// List returns every motorbike in the fleet.
func (repo *MotorbikeRepo) List(ctx context.Context) ([]*motorbike.Motorbike, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, year, model, plate
		FROM rental_manager.motorbike
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query motorbikes: %w", err)
	}
	defer rows.Close()

	var bikes []*motorbike.Motorbike
	for rows.Next() {
		var m motorbike.Motorbike
		if err := rows.Scan(&m.ID, &m.Year, &m.Model, &m.Plate); err != nil {
			return nil, fmt.Errorf("scan motorbike: %w", err)
		}
		bikes = append(bikes, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return bikes, nil
}

// UpdatePlate changes the plate of an existing motorbike.
func (repo *MotorbikeRepo) UpdatePlate(ctx context.Context, id, plate string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE rental_manager.motorbike
		SET plate = $2
		WHERE id = $1
	`, id, plate)
	if err != nil {
		return fmt.Errorf("update motorbike plate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return motorbike.ErrNotFound
	}

	return nil
}

// Delete removes a motorbike row.
func (repo *MotorbikeRepo) Delete(ctx context.Context, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM rental_manager.motorbike
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete motorbike: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return motorbike.ErrNotFound
	}

	return nil
}
