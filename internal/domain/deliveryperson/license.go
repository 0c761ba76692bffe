package deliveryperson

import (
	"errors"
	"strings"
)

// LicenseCategory is a driver's license category as stored in the
// `delivery_man` table.
type LicenseCategory string

const (
	LicenseA       LicenseCategory = "A"
	LicenseB       LicenseCategory = "B"
	LicenseAB      LicenseCategory = "AB"
	LicenseUnknown LicenseCategory = "unknown"
)

var ErrInvalidLicenseCategory = errors.New("invalid license category")

// ParseLicenseCategory normalizes (uppercases+trims) and validates a
// category string. The empty string maps to LicenseUnknown.
func ParseLicenseCategory(in string) (LicenseCategory, error) {
	s := strings.ToUpper(strings.TrimSpace(in))
	if s == "" || strings.EqualFold(s, string(LicenseUnknown)) {
		return LicenseUnknown, nil
	}
	category := LicenseCategory(s)
	if category.Valid() {
		return category, nil
	}
	return "", ErrInvalidLicenseCategory
}

// Valid reports whether category is one of the allowed constants.
func (category LicenseCategory) Valid() bool {
	switch category {
	case LicenseA, LicenseB, LicenseAB, LicenseUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the LicenseCategory.
func (category LicenseCategory) String() string {
	return string(category)
}

// EligibleForMotorbike reports whether this category permits holding a
// motorbike rental. Only A and AB qualify.
func (category LicenseCategory) EligibleForMotorbike() bool {
	return category == LicenseA || category == LicenseAB
}
