package auth

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/clients"
	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
)

// NewAuthorizer builds the configured authorizer. When store is not nil the
// verdicts are cached for cfg.AuthCacheTTL.
func NewAuthorizer(cfg *config.Config, httpClient *http.Client, store cache.CacheService, metrics *monitoring.Metrics, logger utils.Logger) (services.Authorizer, error) {
	var authorizer services.Authorizer

	switch cfg.AuthProvider {
	case config.AuthProviderHTTP:
		authorizer = clients.NewAuthClient(httpClient, cfg.AuthServiceURL)
	case config.AuthProviderCasdoor:
		casdoor, err := NewCasdoorAuthorizer(CasdoorConfig(cfg.Casdoor), logger)
		if err != nil {
			return nil, err
		}
		authorizer = casdoor
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}

	if store == nil {
		return authorizer, nil
	}
	return NewCachedAuthorizer(authorizer, store, cfg.AuthCacheTTL, metrics, logger), nil
}
