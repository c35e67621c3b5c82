package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/models"
)

// RepoCache is the slice of the Redis repository the GitHub proxy uses.
type RepoCache interface {
	SaveStructCached(ctx context.Context, key string, model any, ttl time.Duration) error
	GetStructCached(ctx context.Context, key string, model any) error
}

type GithubService struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      RepoCache
	cacheTTL   time.Duration
}

func NewGithubService(cfg config.GithubConfig, cache RepoCache) *GithubService {
	return &GithubService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
	}
}

// Repos lists the user's five oldest repositories, cached for a short
// window. Any upstream failure maps to ErrNoGithubProfile.
func (gs *GithubService) Repos(ctx context.Context, username string) ([]models.Repo, error) {
	cacheKey := "github:repos:" + username

	if gs.cache != nil {
		var cached []models.Repo
		if err := gs.cache.GetStructCached(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	uri := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created&direction=asc", gs.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("error building github request: %s", err)
	}
	req.Header.Set("User-Agent", "devconnector")
	req.Header.Set("Accept", "application/vnd.github+json")
	if gs.token != "" {
		req.Header.Set("Authorization", "Bearer "+gs.token)
	}

	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGithubProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d", ErrNoGithubProfile, resp.StatusCode)
	}

	var repos []models.Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("error decoding github response: %s", err)
	}

	if gs.cache != nil {
		if err := gs.cache.SaveStructCached(ctx, cacheKey, repos, gs.cacheTTL); err != nil {
			log.Printf("Warning: Failed to cache github repos for %s: %v", username, err)
		}
	}

	return repos, nil
}
