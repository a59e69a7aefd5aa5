package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueRevoke(t *testing.T) {
	s := NewStore()
	sess := s.Issue("user@example.com", time.Hour)

	assert.NotEmpty(t, sess.ID)
	assert.True(t, s.IsActive("user@example.com", sess.ID))
	assert.False(t, s.IsActive("someone@else.com", sess.ID))

	s.Revoke(sess.ID)
	assert.False(t, s.IsActive("user@example.com", sess.ID))
	s.Revoke("unknown")
}

func TestExpiryAndPrune(t *testing.T) {
	s := NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	short := s.Issue("u", time.Minute)
	long := s.Issue("u", 0)
	assert.Equal(t, now.Add(DefaultTTL), long.ExpiresAt)

	now = now.Add(2 * time.Minute)
	assert.False(t, s.IsActive("u", short.ID))
	assert.True(t, s.IsActive("u", long.ID))
	assert.Equal(t, 1, s.Prune())
	assert.True(t, s.IsActive("u", long.ID))
}

func TestLive(t *testing.T) {
	s := NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess := s.Issue("u", time.Minute)
	assert.True(t, s.Live(sess.ID))
	assert.False(t, s.Live("missing"))

	now = now.Add(time.Hour)
	assert.False(t, s.Live(sess.ID))
}
