package common

import (
	"errors"
	"testing"
	"time"

	"cbs/src/types"

	"github.com/stretchr/testify/assert"
)

func TestValidateTimeWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("valid window passes", func(t *testing.T) {
		err := ValidateTimeWindow(base, base.Add(time.Hour))
		assert.Nil(t, err)
	})

	t.Run("zero start is rejected", func(t *testing.T) {
		err := ValidateTimeWindow(time.Time{}, base)
		assert.True(t, errors.Is(err, types.ErrInvalidWindow))
	})

	t.Run("zero end is rejected", func(t *testing.T) {
		err := ValidateTimeWindow(base, time.Time{})
		assert.True(t, errors.Is(err, types.ErrInvalidWindow))
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		err := ValidateTimeWindow(base.Add(time.Hour), base)
		assert.True(t, errors.Is(err, types.ErrInvalidWindow))
	})

	t.Run("equal start and end is rejected", func(t *testing.T) {
		err := ValidateTimeWindow(base, base)
		assert.True(t, errors.Is(err, types.ErrInvalidWindow))
	})

	t.Run("below minimum duration is rejected", func(t *testing.T) {
		err := ValidateTimeWindow(base, base.Add(14*time.Minute))
		assert.True(t, errors.Is(err, types.ErrInvalidWindow))
	})

	t.Run("exactly minimum duration passes", func(t *testing.T) {
		err := ValidateTimeWindow(base, base.Add(15*time.Minute))
		assert.Nil(t, err)
	})
}

func TestValidateTimeWindowMin(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	err := ValidateTimeWindowMin(base, base.Add(time.Minute), 0)
	assert.Nil(t, err)

	err = ValidateTimeWindowMin(base, base.Add(29*time.Minute), 30*time.Minute)
	assert.True(t, errors.Is(err, types.ErrInvalidWindow))
}
