package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: the record does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateIdentity: username or email already taken (case-insensitive).
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrDuplicateSerial: equipment serial number already registered.
	ErrDuplicateSerial = errors.New("serial number already exists")
	// ErrEquipmentAssigned: the equipment already has a site assignment.
	ErrEquipmentAssigned = errors.New("equipment is already assigned to a site")
	// ErrInvalidCredentials: unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAssignmentInvariant: more than one assignment row exists for one
	// equipment id, which the unique index should make impossible.
	ErrAssignmentInvariant = errors.New("equipment has multiple site assignments")
)

// translate maps GORM errors to store sentinels. dup is the conflict error
// to surface when the database reports a uniqueness violation.
func translate(err, dup error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if dup != nil {
			return dup
		}
		return err
	default:
		return err
	}
}
