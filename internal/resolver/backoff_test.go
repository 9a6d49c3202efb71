package resolver

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewBackOff(t *testing.T) {
	b := newBackOff(time.Second, 4)
	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 4*time.Second, b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff())

	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())
}

func TestNewBackOffSingleAttempt(t *testing.T) {
	assert.Equal(t, backoff.Stop, newBackOff(time.Second, 1).NextBackOff())
	assert.Equal(t, backoff.Stop, newBackOff(time.Second, 0).NextBackOff())
}
