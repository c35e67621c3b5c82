// Package client is a small API client for the devconnector backend. The
// token lives in an explicit Session passed to every authenticated call
// instead of any process-global storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/service"
)

// Session holds the bearer token for one signed-in user.
type Session struct {
	Token string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	StatusCode int
	Msg        string               `json:"msg"`
	Errors     []service.FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Msg)
	}
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Errors[0].Msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, nil, http.MethodPost, "/api/users", body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, nil, http.MethodPost, "/api/auth", body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token}, nil
}

func (c *Client) CurrentUser(ctx context.Context, s *Session) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, s, http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) MyProfile(ctx context.Context, s *Session) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodGet, "/api/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpsertProfile(ctx context.Context, s *Session, input service.UpsertProfileInput) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodPost, "/api/profile", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) Profiles(ctx context.Context) ([]*models.ProfileView, error) {
	var profiles []*models.ProfileView
	if err := c.do(ctx, nil, http.MethodGet, "/api/profile", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) ProfileByUser(ctx context.Context, userID string) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, nil, http.MethodGet, "/api/profile/user/"+userID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) DeleteAccount(ctx context.Context, s *Session) error {
	return c.do(ctx, s, http.MethodDelete, "/api/profile", nil, nil)
}

func (c *Client) AddExperience(ctx context.Context, s *Session, entry models.Experience) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodPut, "/api/profile/experience", entry, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) RemoveExperience(ctx context.Context, s *Session, entryID string) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodDelete, "/api/profile/experience/"+entryID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) AddEducation(ctx context.Context, s *Session, entry models.Education) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodPut, "/api/profile/education", entry, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) RemoveEducation(ctx context.Context, s *Session, entryID string) (*models.ProfileView, error) {
	var profile models.ProfileView
	if err := c.do(ctx, s, http.MethodDelete, "/api/profile/education/"+entryID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GithubRepos(ctx context.Context, username string) ([]models.Repo, error) {
	var repos []models.Repo
	if err := c.do(ctx, nil, http.MethodGet, "/api/profile/github/"+username, nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) do(ctx context.Context, s *Session, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %s", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error building request: %s", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil && s.Token != "" {
		req.Header.Set("x-auth-token", s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error performing request: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Msg = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %s", err)
	}
	return nil
}
