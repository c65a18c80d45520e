package powerup

import "errors"

// Hard errors: they abort derivation of the current item or bonus definition
// and are returned to the caller. Data inconsistencies that only skip a single
// contribution are logged instead.
var (
	// ErrNotInitialized: в definition не задано обязательное поле (boost, target).
	ErrNotInitialized = errors.New("power-up definition not initialized")

	// ErrZeroDropLevel: drop level, используемый как делитель в формулах, равен 0.
	ErrZeroDropLevel = errors.New("item drop level is zero")
)
