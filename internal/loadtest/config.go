package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Students    int           // Number of synthetic students to sign up
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	DupSample   int           // Number of signups to resubmit as duplicates
	KeepMembers bool          // Skip the withdraw phase
	OutputFile  string        // Optional JSON report path
}

// Signup is one synthetic student/activity pair.
type Signup struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// Stats holds run statistics.
type Stats struct {
	Activities       int           `json:"activities"`
	SignupsSubmitted int           `json:"signups_submitted"`
	SignupsAccepted  int           `json:"signups_accepted"`
	SignupsRejected  int           `json:"signups_rejected"`
	SignupsFailed    int           `json:"signups_failed"`
	DuplicatesTried  int           `json:"duplicates_tried"`
	DuplicatesDenied int           `json:"duplicates_denied"`
	MissingAfter     int           `json:"missing_after_signup"`
	Withdrawn        int           `json:"withdrawn"`
	WithdrawFailed   int           `json:"withdraw_failed"`
	LeftoverAfter    int           `json:"leftover_after_withdraw"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
}

// ActivityView mirrors the JSON shape of one /activities entry.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}
