package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowLocalEnforcesLimit(t *testing.T) {
	key := "test:limit"
	ResetLimit(key)

	for i := 0; i < 3; i++ {
		assert.True(t, allowLocal(key, 3, time.Minute))
	}
	assert.False(t, allowLocal(key, 3, time.Minute))
}

func TestAllowLocalWindowExpiry(t *testing.T) {
	key := "test:expiry"
	ResetLimit(key)

	assert.True(t, allowLocal(key, 1, 10*time.Millisecond))
	assert.False(t, allowLocal(key, 1, 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, allowLocal(key, 1, 10*time.Millisecond))
}

func TestResetLimit(t *testing.T) {
	key := "test:reset"
	ResetLimit(key)

	assert.True(t, allowLocal(key, 1, time.Minute))
	assert.False(t, allowLocal(key, 1, time.Minute))

	ResetLimit(key)
	assert.True(t, allowLocal(key, 1, time.Minute))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	ResetLimit("test:a")
	ResetLimit("test:b")

	assert.True(t, allowLocal("test:a", 1, time.Minute))
	assert.True(t, allowLocal("test:b", 1, time.Minute))
	assert.False(t, allowLocal("test:a", 1, time.Minute))
}
