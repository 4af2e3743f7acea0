package data

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// RegistryClient fetches a station registry document from a remote provider,
// adapted from the teacher's GridStatusClient: same http.Client+timeout,
// typed-error, request/response logging shape, generalized from a grid
// pricing API to a station-registry provider.
type RegistryClient struct {
	BaseURL string
	Client  *http.Client
}

// NewRegistryClient builds a client with a 30s request timeout, matching the
// teacher's default.
func NewRegistryClient(baseURL string) *RegistryClient {
	return &RegistryClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// RegistryError mirrors the teacher's GridStatusError: a typed error
// carrying the HTTP status and a machine-readable code.
type RegistryError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RegistryError) Error() string { return e.Message }

// FetchRegistry retrieves and parses a station registry document over HTTP.
func (c *RegistryClient) FetchRegistry(ctx context.Context, path string) (*model.Registry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("data: building registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[RegistryFetch] request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("data: fetching registry: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[RegistryFetch] response: %d %s (duration: %v)", resp.StatusCode, resp.Status, duration)

	if resp.StatusCode != http.StatusOK {
		return nil, &RegistryError{
			StatusCode: resp.StatusCode,
			Code:       "REGISTRY_FETCH_FAILED",
			Message:    fmt.Sprintf("registry fetch returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("data: reading registry response body: %w", err)
	}
	return ParseRegistry(body)
}
