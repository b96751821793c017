// Package types contains the JSON shapes exchanged over HTTP.
package types

import "github.com/okian/mergington/internal/domain/activity"

// Activity is the public view of one catalog entry, keyed by name in the
// GET /activities response.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Activities maps activity name to its view.
type Activities map[string]Activity

// Message is the confirmation body for successful signup and unregister calls.
type Message struct {
	Message string `json:"message"`
}

// ErrorDetail is the body of every non-2xx API response.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// FromActivities builds the GET /activities body. Participants is always a
// non-nil slice.
func FromActivities(acts []activity.Activity) Activities {
	out := make(Activities, len(acts))
	for _, a := range acts {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		out[a.Name] = Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		}
	}
	return out
}
