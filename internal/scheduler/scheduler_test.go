package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := New()
	require.NoError(t, s.Register("post_checker", "@every 1m", func() {}))
	assert.Equal(t, 1, s.TaskCount())
}

func TestRegisterDuplicateIsNoOp(t *testing.T) {
	s := New()
	require.NoError(t, s.Register("daily_analytics", "0 2 * * *", func() {}))
	require.NoError(t, s.Register("daily_analytics", "0 3 * * *", func() {}))
	assert.Equal(t, 1, s.TaskCount())
}

func TestRegisterInvalidSpec(t *testing.T) {
	s := New()
	err := s.Register("broken", "not a cron spec", func() {})
	assert.Error(t, err)
	assert.Equal(t, 0, s.TaskCount())
}

func TestStartStop(t *testing.T) {
	s := New()
	require.NoError(t, s.Register("noop", "@every 1h", func() {}))
	s.Start()
	s.Stop()
}
