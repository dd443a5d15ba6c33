package clock

import "time"

// Clock supplies the current time to services. The business date is derived
// here rather than ad hoc in services because a venue's business-day boundary
// is a deployment concern, not a pricing or lifecycle concern.
type Clock interface {
	UTCNow() time.Time
	LocalNow() time.Time
	// BusinessDate returns the local calendar date used to scope receipt
	// sequences, truncated to midnight in the local zone.
	BusinessDate() time.Time
}

// SystemClock reads the host clock and uses plain local midnight as the
// business-day boundary.
type SystemClock struct{}

// NewSystemClock creates a clock backed by the host time.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) UTCNow() time.Time {
	return time.Now().UTC()
}

func (SystemClock) LocalNow() time.Time {
	return time.Now()
}

func (SystemClock) BusinessDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
