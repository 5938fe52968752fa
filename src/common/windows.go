package common

import (
	"time"

	"cbs/src/config"
	"cbs/src/types"
)

// ValidateTimeWindow checks ordering and minimum duration of a booking window.
// Every state-mutating operation that accepts a window calls this again even
// when the request boundary already did.
func ValidateTimeWindow(startDt, endDt time.Time) error {
	return ValidateTimeWindowMin(startDt, endDt, config.MIN_BOOKING_DURATION_MINUTES*time.Minute)
}

func ValidateTimeWindowMin(startDt, endDt time.Time, minDuration time.Duration) error {
	if startDt.IsZero() || endDt.IsZero() {
		return types.NewInvalidWindow("start and end times are required")
	}
	if !endDt.After(startDt) {
		return types.NewInvalidWindow("end time must be after start time")
	}
	if endDt.Sub(startDt) < minDuration {
		return types.NewInvalidWindow("booking duration must be at least %d minutes", int(minDuration.Minutes()))
	}
	return nil
}
