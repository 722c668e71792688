package records

import (
	"sync"

	"golang.org/x/time/rate"
)

// AnonymousKey is the limiter key for requests that carry no user id.
const AnonymousKey = "anonymous"

// RateLimiterStore keeps one limiter per user id, created on first use with
// the store defaults.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(userID string) *rate.Limiter {
	if userID == "" {
		userID = AnonymousKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[userID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[userID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(userID string, userRate rate.Limit, userBurst int) {
	if userID == "" {
		userID = AnonymousKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[userID] = rate.NewLimiter(userRate, userBurst)
}

func (s *RateLimiterStore) Allow(userID string) bool {
	return s.GetLimiter(userID).Allow()
}

func (s *RateLimiterStore) Defaults() (rate.Limit, int) {
	return s.defaultRate, s.defaultBurst
}
