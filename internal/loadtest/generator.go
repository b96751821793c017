package loadtest

import (
	"slices"

	"github.com/google/uuid"
)

// generateSignups assigns n fresh students round-robin across activity
// names in sorted order so runs are reproducible apart from the IDs.
func generateSignups(n int, activities []string) []Signup {
	if n <= 0 || len(activities) == 0 {
		return nil
	}
	names := slices.Clone(activities)
	slices.Sort(names)

	out := make([]Signup, n)
	for i := range out {
		out[i] = Signup{
			Activity: names[i%len(names)],
			Email:    "student-" + uuid.NewString() + "@" + EmailDomain,
		}
	}
	return out
}
