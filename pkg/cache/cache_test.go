package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shirshak001/JEWEL/pkg/apperr"
)

// In tests no Redis connection is made, so RDB stays nil and the package
// runs in its degraded mode.

func TestSetWithoutRedisFails(t *testing.T) {
	assert.False(t, Available())

	err := Set(context.Background(), "session:abc", "payload", time.Hour)
	assert.True(t, errors.Is(err, apperr.ErrUnavailable))
}

func TestGetWithoutRedisMisses(t *testing.T) {
	var dest string
	assert.False(t, Get(context.Background(), "session:abc", &dest))
}

func TestDelWithoutRedisIsNoop(t *testing.T) {
	assert.NoError(t, Del(context.Background(), "session:abc"))
	assert.NoError(t, Forget(context.Background(), "session:abc"))
}
