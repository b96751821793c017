package activity

import (
	"fmt"
	"strings"
)

// DefaultCatalog returns the reference Mergington High School catalog.
// Each call returns fresh slices, so callers may mutate the result.
func DefaultCatalog() []Activity {
	return []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and compete in inter-school basketball games",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Develop tennis skills and play friendly matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"ava@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and mixed media",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Music Band",
			Description:     "Rehearse and perform in the school band",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"noah@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Build public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"lucas@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Hands-on experiments and science fair preparation",
			Schedule:        "Wednesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"amelia@mergington.edu"},
		},
	}
}

// ValidateCatalog checks the invariants a catalog must hold before a store is
// built from it. Seeded participants above MaxParticipants are accepted since
// capacity is informational unless enforcement is enabled.
func ValidateCatalog(acts []Activity) error {
	if len(acts) == 0 {
		return fmt.Errorf("empty catalog: %w", ErrInvalidCatalog)
	}
	names := make(map[string]struct{}, len(acts))
	for i := range acts {
		a := &acts[i]
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("entry %d has no name: %w", i, ErrInvalidCatalog)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("duplicate activity %q: %w", a.Name, ErrInvalidCatalog)
		}
		names[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%q: max_participants must be positive, got %d: %w", a.Name, a.MaxParticipants, ErrInvalidCatalog)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%q: duplicate participant %s: %w", a.Name, email, ErrInvalidCatalog)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
