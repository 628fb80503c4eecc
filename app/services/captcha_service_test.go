package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedAngle peeks at the pending challenge without consuming it
func storedAngle(svc CaptchaService, id string) (int, bool) {
	impl := svc.(*captchaServiceImpl)
	impl.store.mu.Lock()
	defer impl.store.mu.Unlock()
	entry, ok := impl.store.m[id]
	return entry.angle, ok
}

func TestCaptchaGenerateProducesChallenge(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 15, 220)
	require.NoError(t, err)

	challenge, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, challenge.ID)
	assert.NotEmpty(t, challenge.MasterImageBase64)
	assert.NotEmpty(t, challenge.ThumbImageBase64)
	assert.Equal(t, 110, challenge.ThumbSize)
}

func TestCaptchaVerifyIsSingleUse(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 15, 220)
	require.NoError(t, err)

	challenge, err := svc.Generate(context.Background())
	require.NoError(t, err)

	angle, ok := storedAngle(svc, challenge.ID)
	require.True(t, ok)

	assert.True(t, svc.Verify(context.Background(), challenge.ID, angle))
	// the challenge is consumed on the first attempt
	assert.False(t, svc.Verify(context.Background(), challenge.ID, angle))
}

func TestCaptchaVerifyRejectsWrongAngle(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 5, 220)
	require.NoError(t, err)

	challenge, err := svc.Generate(context.Background())
	require.NoError(t, err)

	angle, ok := storedAngle(svc, challenge.ID)
	require.True(t, ok)

	assert.False(t, svc.Verify(context.Background(), challenge.ID, angle+90))
}

func TestCaptchaVerifyUnknownChallenge(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 15, 220)
	require.NoError(t, err)

	assert.False(t, svc.Verify(context.Background(), "missing", 42))
}

func TestChallengeStoreExpiry(t *testing.T) {
	store := newChallengeStore(time.Nanosecond)
	store.Put("c1", 33)
	time.Sleep(time.Millisecond)

	_, ok := store.Take("c1")
	assert.False(t, ok)
}
