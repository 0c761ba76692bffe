package postgres

import (
	"context"
	"errors"
	"fmt"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/ports"

	"github.com/jackc/pgx/v5"
)

// DeliveryPersonRepo persists delivery people using pgx and plain SQL. The
// table keeps its historical name `delivery_man`.
type DeliveryPersonRepo struct{}

// NewDeliveryPersonRepo constructs a new DeliveryPersonRepo.
func NewDeliveryPersonRepo() ports.DeliveryPersonRepository {
	return &DeliveryPersonRepo{}
}

// Create inserts a new delivery person row. Uniqueness of legal id and
// license number is enforced by the table constraints.
func (repo *DeliveryPersonRepo) Create(ctx context.Context, p *deliveryperson.DeliveryPerson) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rental_manager.delivery_man (id, name, cnpj, birth_date, drivers_license, drivers_license_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.LegalID, p.BirthDate, p.LicenseNumber, p.LicenseCategory.String())
	if err != nil {
		return fmt.Errorf("insert delivery person: %w", err)
	}

	return nil
}

// GetByID fetches a delivery person by primary key.
func (repo *DeliveryPersonRepo) GetByID(ctx context.Context, id string) (*deliveryperson.DeliveryPerson, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out deliveryperson.DeliveryPerson
	var category string
	err = tx.QueryRow(ctx, `
		SELECT id, name, cnpj, birth_date, drivers_license, drivers_license_type
		FROM rental_manager.delivery_man
		WHERE id = $1
	`, id).Scan(&out.ID, &out.Name, &out.LegalID, &out.BirthDate, &out.LicenseNumber, &category)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, deliveryperson.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query delivery person by id: %w", err)
	}

	parsed, err := deliveryperson.ParseLicenseCategory(category)
	if err != nil {
		parsed = deliveryperson.LicenseUnknown
	}
	out.LicenseCategory = parsed

	return &out, nil
}
