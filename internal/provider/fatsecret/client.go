// Package fatsecret is a thin client for the FatSecret platform API using
// the OAuth2 client-credentials flow.
package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/DenGolivets/tracker-api/internal/config"
)

const (
	defaultTokenURL = "https://oauth.fatsecret.com/connect/token"
	defaultAPIURL   = "https://platform.fatsecret.com/rest/server.api"
)

// FoodResult is one normalized hit from foods.search.
type FoodResult struct {
	FoodID      string `json:"foodId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       string `json:"brand,omitempty"`
}

// Client talks to the FatSecret platform API. The zero HTTPClient gets a
// sane timeout; access tokens are cached until shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	apiURL       string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New creates a Client from configuration, applying endpoint defaults.
func New(cfg config.FatSecretConfig) *Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     tokenURL,
		apiURL:       apiURL,
		httpClient:   &http.Client{Timeout: 12 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a cached access token, fetching a fresh one when the cached
// token is missing or within 30s of expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > 30*time.Second {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create fatsecret token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute fatsecret token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read fatsecret token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fatsecret token request failed with status %d", resp.StatusCode)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode fatsecret token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("fatsecret token response missing access_token")
	}

	c.accessToken = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// foodsSearchResponse mirrors the platform's quirk of returning an object
// instead of an array when exactly one food matches.
type foodsSearchResponse struct {
	Foods struct {
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
}

type foodItem struct {
	FoodID          string `json:"food_id"`
	FoodName        string `json:"food_name"`
	FoodDescription string `json:"food_description"`
	BrandName       string `json:"brand_name"`
}

// SearchFoods runs foods.search and returns normalized results.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]FoodResult, error) {
	accessToken, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("method", "foods.search")
	params.Set("search_expression", query)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create fatsecret search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute fatsecret search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fatsecret search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fatsecret search failed with status %d", resp.StatusCode)
	}

	var parsed foodsSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode fatsecret search response: %w", err)
	}
	if len(parsed.Foods.Food) == 0 {
		return []FoodResult{}, nil
	}

	var items []foodItem
	if err := json.Unmarshal(parsed.Foods.Food, &items); err != nil {
		// Single match comes back as an object, not an array.
		var single foodItem
		if err := json.Unmarshal(parsed.Foods.Food, &single); err != nil {
			return nil, fmt.Errorf("decode fatsecret food list: %w", err)
		}
		items = []foodItem{single}
	}

	results := make([]FoodResult, 0, len(items))
	for _, item := range items {
		results = append(results, FoodResult{
			FoodID:      item.FoodID,
			Name:        strings.TrimSpace(item.FoodName),
			Description: strings.TrimSpace(item.FoodDescription),
			Brand:       strings.TrimSpace(item.BrandName),
		})
	}
	return results, nil
}
