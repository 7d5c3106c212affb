package engine

import "fmt"

// UnknownRitualError is returned when a completion references a ritual
// identifier with no stored definition.
type UnknownRitualError struct {
	ID string
}

func (e UnknownRitualError) Error() string {
	return fmt.Sprintf("unknown ritual: %s", e.ID)
}

// RitualsDisabledError is returned when an operation is attempted for a user
// who has rituals turned off.
type RitualsDisabledError struct {
	UserID string
}

func (e RitualsDisabledError) Error() string {
	return fmt.Sprintf("rituals are disabled for user %s", e.UserID)
}
