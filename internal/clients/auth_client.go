package clients

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// AuthClient asks the authentication service whether a session token holds
// a role
type AuthClient struct {
	baseClient
}

func NewAuthClient(httpClient *http.Client, baseURL string) *AuthClient {
	return &AuthClient{baseClient: newBaseClient(httpClient, baseURL)}
}

type authorizeResponse struct {
	Authorized bool `json:"authorized"`
}

// IsAuthorized returns false without error when the service refuses the
// token with 401 or 403
func (c *AuthClient) IsAuthorized(ctx context.Context, token string, role models.Role) (bool, error) {
	query := url.Values{}
	query.Set("role", strconv.Itoa(int(role)))

	var resp authorizeResponse
	err := c.do(ctx, "authorize", http.MethodGet, "/api/v1/authorize?"+query.Encode(), token, nil, &resp)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
			return false, nil
		}
		return false, err
	}
	return resp.Authorized, nil
}
