// Package model contains domain models passed between layers.
package model

import "time"

// Membership confirms a state change of one (activity, email) pair.
type Membership struct {
	Activity string    // catalog key, exactly as requested
	Email    string    // opaque participant identifier
	At       time.Time // when the change was applied
}
