// Package activity defines extracurricular activities and their membership rules.
package activity

import (
	"fmt"
	"slices"
)

// Activity is one catalog entry. Participants is ordered by signup time and
// never holds the same email twice.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Has reports whether email is enrolled.
func (a *Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft returns the remaining capacity, never negative.
func (a *Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether the participant list reached MaxParticipants.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// Enroll appends email to the participant list. Capacity is only checked
// when enforceCapacity is set; otherwise MaxParticipants is informational.
func (a *Activity) Enroll(email string, enforceCapacity bool) error {
	if a.Has(email) {
		return fmt.Errorf("%s in %q: %w", email, a.Name, ErrAlreadyEnrolled)
	}
	if enforceCapacity && a.IsFull() {
		return fmt.Errorf("%q has %d/%d participants: %w", a.Name, len(a.Participants), a.MaxParticipants, ErrActivityFull)
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Withdraw removes the single occurrence of email, keeping the order of the rest.
func (a *Activity) Withdraw(email string) error {
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return fmt.Errorf("%s in %q: %w", email, a.Name, ErrNotEnrolled)
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return nil
}

// Clone returns a deep copy. Participants is never nil in the copy so it
// always encodes as a JSON array.
func (a *Activity) Clone() Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}
