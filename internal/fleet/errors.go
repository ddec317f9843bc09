package fleet

import "errors"

// Domain-specific errors for the fleet package.
var (
	// ErrInvalidPayload is returned when a request body fails validation.
	// The wrapping ValidationError carries the client-facing message.
	ErrInvalidPayload = errors.New("fleet: invalid payload")

	// ErrPilotNotFound is returned when a pilot ID does not exist.
	ErrPilotNotFound = errors.New("fleet: pilot not found")

	// ErrShipNotFound is returned when a ship ID does not exist.
	ErrShipNotFound = errors.New("fleet: ship not found")

	// ErrShipClassNotFound is returned when a ship class ID does not exist.
	ErrShipClassNotFound = errors.New("fleet: ship class not found")

	// ErrWeaponClassNotFound is returned when a weapon class ID does not exist.
	ErrWeaponClassNotFound = errors.New("fleet: weapon class not found")

	// ErrShipWeaponNotFound is returned when no weapon is mounted under a key.
	ErrShipWeaponNotFound = errors.New("fleet: ship weapon not found")

	// ErrShipWeaponExists is returned when a weapon is already mounted
	// under the same (ship, ship class, weapon class) key.
	ErrShipWeaponExists = errors.New("fleet: ship weapon already exists")

	// ErrInvalidReference is returned when a write points at a pilot,
	// ship, ship class or weapon class that does not exist.
	ErrInvalidReference = errors.New("fleet: referenced record does not exist")

	// ErrInUse is returned when deleting a record that others still reference.
	ErrInUse = errors.New("fleet: record is still referenced")
)
