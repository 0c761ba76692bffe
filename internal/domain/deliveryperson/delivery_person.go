package deliveryperson

import (
	"errors"
	"strings"
	"time"
)

// DeliveryPerson is the domain entity corresponding to the `delivery_man`
// table. LegalID and LicenseNumber are unique across the fleet.
type DeliveryPerson struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	LegalID         string          `json:"legal_id"`
	BirthDate       time.Time       `json:"birth_date"`
	LicenseNumber   string          `json:"license_number"`
	LicenseCategory LicenseCategory `json:"license_category"`
}

var (
	ErrNotFound              = errors.New("delivery person not found")
	ErrIDRequired            = errors.New("delivery person id is required")
	ErrNameRequired          = errors.New("delivery person name is required")
	ErrLegalIDRequired       = errors.New("legal id is required")
	ErrLicenseNumberRequired = errors.New("license number is required")
)

// New validates and builds a delivery person.
func New(id, name, legalID string, birthDate time.Time, licenseNumber string, category LicenseCategory) (*DeliveryPerson, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, ErrIDRequired
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil, ErrNameRequired
	}
	if legalID = strings.TrimSpace(legalID); legalID == "" {
		return nil, ErrLegalIDRequired
	}
	if licenseNumber = strings.TrimSpace(licenseNumber); licenseNumber == "" {
		return nil, ErrLicenseNumberRequired
	}
	if !category.Valid() {
		return nil, ErrInvalidLicenseCategory
	}

	return &DeliveryPerson{
		ID:              id,
		Name:            name,
		LegalID:         legalID,
		BirthDate:       birthDate,
		LicenseNumber:   licenseNumber,
		LicenseCategory: category,
	}, nil
}
