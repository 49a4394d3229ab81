package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Session{}).Expired(now), "zero deadline never expires")
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now.Add(-time.Second)}).Expired(now))
}

func TestSession_HasPermission(t *testing.T) {
	s := &Session{Permissions: []string{"SAFE_DRIVE_ACCESS"}}
	assert.True(t, s.HasPermission("SAFE_DRIVE_ACCESS"))
	assert.False(t, (&Session{}).HasPermission("SAFE_DRIVE_ACCESS"))
}
