package motorbike

import (
	"errors"
	"strings"
)

// Motorbike is the domain entity corresponding to the `motorbike` table.
type Motorbike struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

var (
	ErrNotFound      = errors.New("motorbike not found")
	ErrIDRequired    = errors.New("motorbike id is required")
	ErrPlateRequired = errors.New("motorbike plate is required")
	ErrModelRequired = errors.New("motorbike model is required")
	ErrInvalidYear   = errors.New("motorbike year is invalid")
	ErrStillRented   = errors.New("motorbike has a rental and cannot be deleted")
)

// New validates and builds a motorbike. The id is caller-supplied: the fleet
// catalog assigns identifiers upstream of this system.
func New(id string, year int, model, plate string) (*Motorbike, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, ErrIDRequired
	}
	if model = strings.TrimSpace(model); model == "" {
		return nil, ErrModelRequired
	}
	if plate = strings.TrimSpace(plate); plate == "" {
		return nil, ErrPlateRequired
	}
	if year < 1900 || year > 2100 {
		return nil, ErrInvalidYear
	}

	return &Motorbike{ID: id, Year: year, Model: model, Plate: plate}, nil
}

// Is2024 reports whether the motorbike is a 2024 model. 2024 models get a
// separate notification on creation.
func (m *Motorbike) Is2024() bool {
	return m.Year == 2024
}
