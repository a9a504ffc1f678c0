package clients

import (
	"context"
	"fmt"
	"net/http"
)

// UserClient reads student profiles from the student service
type UserClient struct {
	baseClient
}

func NewUserClient(httpClient *http.Client, baseURL string) *UserClient {
	return &UserClient{baseClient: newBaseClient(httpClient, baseURL)}
}

type userProfileResponse struct {
	ID        uint `json:"id"`
	ExtraTime int  `json:"extra_time"`
}

// GetExtraTime returns the student's extra exam time in minutes
func (c *UserClient) GetExtraTime(ctx context.Context, token string, userID uint) (int, error) {
	var resp userProfileResponse
	if err := c.do(ctx, "get user profile", http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), token, nil, &resp); err != nil {
		return 0, err
	}
	if resp.ExtraTime < 0 {
		return 0, fmt.Errorf("get user profile: negative extra time %d for user %d", resp.ExtraTime, userID)
	}
	return resp.ExtraTime, nil
}
