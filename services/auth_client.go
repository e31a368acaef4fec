// services/auth_client.go
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AuthClient resolves end-user bearer tokens against the hosted auth service.
type AuthClient struct {
	BaseURL string
	AnonKey string
	Client  *http.Client
}

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Role         string                 `json:"role"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// MetadataString pulls a string field out of user_metadata.
func (u *AuthUser) MetadataString(key string) string {
	if u.UserMetadata == nil {
		return ""
	}
	if v, ok := u.UserMetadata[key].(string); ok {
		return v
	}
	return ""
}

func NewAuthClient(baseURL, anonKey string) *AuthClient {
	return &AuthClient{
		BaseURL: baseURL,
		AnonKey: anonKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ValidateToken calls GET /auth/v1/user with the caller's access token.
// Any non-200 response means the token is invalid or expired.
func (c *AuthClient) ValidateToken(accessToken string) (*AuthUser, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.BaseURL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.AnonKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("AuthService /auth/v1/user returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("auth validation failed: %d", resp.StatusCode)
	}

	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth response missing user id")
	}

	return &user, nil
}

// ListUsers pulls user records from the auth admin API. Used by the profile
// sync worker; requires the service-role key, not the anon key.
func (c *AuthClient) ListUsers(serviceKey string, page, perPage int) ([]AuthUser, error) {
	url := fmt.Sprintf("%s/auth/v1/admin/users?page=%d&per_page=%d", c.BaseURL, page, perPage)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+serviceKey)
	req.Header.Set("apikey", serviceKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("auth admin API returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Users, nil
}
