package loadtest

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Defaults applied by normalize.
const (
	DefaultStudents  = 500
	DefaultWorkers   = 8
	DefaultTimeout   = 10 * time.Second
	DefaultDupSample = 10
)

// EmailDomain is used for generated student addresses.
const EmailDomain = "load.mergington.edu"

// PercentageMultiplier converts ratios to percentages.
const PercentageMultiplier = 100
