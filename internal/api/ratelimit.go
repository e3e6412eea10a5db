package api

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedTokens bounds the limiter set. The least recently seen token is
// dropped first and starts with a full bucket if it returns.
const maxTrackedTokens = 10_000

// rateLimiter keeps one token bucket per bearer token. A bucket holds
// `requests` tokens and refills evenly over `window`.
type rateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	every    rate.Limit
	burst    int
	refill   time.Duration
}

// newRateLimiter returns nil when requests or window is not positive, which
// disables limiting.
func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	if requests <= 0 || window <= 0 {
		return nil
	}
	cache, err := lru.New[string, *rate.Limiter](maxTrackedTokens)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	refill := window / time.Duration(requests)
	return &rateLimiter{
		limiters: cache,
		every:    rate.Every(refill),
		burst:    requests,
		refill:   refill,
	}
}

// Allow reports whether token may make one more request now.
func (l *rateLimiter) Allow(token string) bool {
	if l == nil {
		return true
	}
	key := hashToken(token)

	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		// Another request for the same token may have raced us here.
		if prev, found, _ := l.limiters.PeekOrAdd(key, lim); found {
			lim = prev
		}
	}
	return lim.Allow()
}

// retryAfterSeconds is how long until one more request is available.
func (l *rateLimiter) retryAfterSeconds() int {
	if l == nil {
		return 0
	}
	return int(math.Ceil(l.refill.Seconds()))
}

// hashToken keeps raw credentials out of the limiter's memory.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
