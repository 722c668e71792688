package records

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiterStore_Defaults(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("u1")
	require.NotNil(t, limiter)
	assert.Equal(t, rate.Limit(1), limiter.Limit())
	assert.Equal(t, 2, limiter.Burst())

	r, b := store.Defaults()
	assert.Equal(t, rate.Limit(1), r)
	assert.Equal(t, 2, b)
}

func TestRateLimiterStore_PerUser(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("u2", 5, 10)
	limiter := store.GetLimiter("u2")
	assert.Equal(t, rate.Limit(5), limiter.Limit())
	assert.Equal(t, 10, limiter.Burst())

	assert.Equal(t, rate.Limit(1), store.GetLimiter("u3").Limit())
}

func TestRateLimiterStore_AnonymousShareOneLimiter(t *testing.T) {
	store := NewRateLimiterStore(1, 1)

	assert.Same(t, store.GetLimiter(""), store.GetLimiter(AnonymousKey))
	assert.True(t, store.Allow(""))
	assert.False(t, store.Allow(""))
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	userID := uuid.NewString()

	var wg sync.WaitGroup
	limiters := make(chan *rate.Limiter, 100)

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiters <- store.GetLimiter(userID)
		}()
	}

	wg.Wait()
	close(limiters)

	first := store.GetLimiter(userID)
	for l := range limiters {
		assert.Same(t, first, l)
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2)
	userID := uuid.NewString()

	assert.True(t, store.Allow(userID))
	assert.True(t, store.Allow(userID))
	assert.False(t, store.Allow(userID), "expected third call to be rate limited")

	time.Sleep(600 * time.Millisecond)
	assert.True(t, store.Allow(userID), "expected one token after refill")
}
