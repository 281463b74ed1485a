package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_BurstThenWait(t *testing.T) {
	dl := NewDomainLimiter(time.Hour, 2)
	ctx := context.Background()

	require.NoError(t, dl.Wait(ctx, "https://www.welcometothejungle.com/fr/jobs?page=1"))
	require.NoError(t, dl.Wait(ctx, "https://www.welcometothejungle.com/fr/jobs?page=2"))

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, dl.Wait(short, "https://www.welcometothejungle.com/fr/jobs?page=3"))
}

func TestDomainLimiter_HostsAreIndependent(t *testing.T) {
	dl := NewDomainLimiter(time.Hour, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, dl.Wait(ctx, "https://a.example.com/x"))
	require.NoError(t, dl.Wait(ctx, "https://B.example.com/x"))
	assert.Len(t, dl.limiters, 2)
}

func TestDomainLimiter_NoPacing(t *testing.T) {
	dl := NewDomainLimiter(0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 50; i++ {
		require.NoError(t, dl.Wait(ctx, "https://example.com/"))
	}
}

func TestDomainLimiter_HostlessURL(t *testing.T) {
	dl := NewDomainLimiter(time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())

	assert.NoError(t, dl.Wait(ctx, "page.html"))
	cancel()
	assert.ErrorIs(t, dl.Wait(ctx, "page.html"), context.Canceled)
}
