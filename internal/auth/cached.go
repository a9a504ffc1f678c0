package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/golang-jwt/jwt/v4"
)

const DefaultVerdictTTL = 30 * time.Second

// CachedAuthorizer remembers the verdicts of another Authorizer in redis so a
// burst of requests with the same token costs one round trip. A verdict never
// outlives the token's exp claim; a revocation upstream is only seen once the
// cached verdict expires.
type CachedAuthorizer struct {
	next    services.Authorizer
	cache   cache.CacheService
	ttl     time.Duration
	metrics *monitoring.Metrics
	logger  utils.Logger
	now     func() time.Time
}

func NewCachedAuthorizer(next services.Authorizer, store cache.CacheService, ttl time.Duration, metrics *monitoring.Metrics, logger utils.Logger) *CachedAuthorizer {
	if ttl <= 0 {
		ttl = DefaultVerdictTTL
	}
	return &CachedAuthorizer{
		next:    next,
		cache:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// IsAuthorized only caches definite verdicts; errors from the wrapped
// authorizer pass through uncached
func (a *CachedAuthorizer) IsAuthorized(ctx context.Context, token string, role models.Role) (bool, error) {
	key := cache.AuthorizationKey(tokenDigest(token), int(role))

	var verdict bool
	err := a.cache.Get(ctx, key, &verdict)
	a.metrics.CacheLookup("authz", err == nil)
	if err == nil {
		return verdict, nil
	}
	if !cache.IsMiss(err) {
		a.logger.WarnContext(ctx, "Authorization cache unavailable", "error", err)
	}

	verdict, err = a.next.IsAuthorized(ctx, token, role)
	if err != nil {
		return false, err
	}

	ttl := a.verdictTTL(token)
	if ttl <= 0 {
		return verdict, nil
	}
	if err := a.cache.Set(ctx, key, verdict, ttl); err != nil {
		a.logger.WarnContext(ctx, "Failed to cache authorization verdict", "error", err)
	}
	return verdict, nil
}

// verdictTTL caps the configured TTL at the token's remaining lifetime.
// Opaque tokens and tokens without exp get the configured TTL.
func (a *CachedAuthorizer) verdictTTL(token string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	// the signature is checked by the wrapped authorizer; exp only bounds caching
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return a.ttl
	}
	remaining := claims.ExpiresAt.Time.Sub(a.now())
	if remaining < a.ttl {
		return remaining
	}
	return a.ttl
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
