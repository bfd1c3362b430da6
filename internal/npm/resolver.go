// Package npm integrates with the npm ecosystem: it resolves current
// package versions from the registry and drives the npm CLI to
// initialize a manifest and install dependencies.
package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// resolveTimeout bounds a single version lookup so one slow registry
// call cannot hang an install batch.
const resolveTimeout = 10 * time.Second

// ErrVersionNotFound indicates the registry response carried no version.
var ErrVersionNotFound = errors.New("npm: version not found in registry response")

// Resolver looks up the current published version of a package.
type Resolver interface {
	// Resolve returns the latest version string for name. Failures are
	// reported as errors; callers treat them as an absent version.
	Resolve(ctx context.Context, name string) (string, error)
}

// packumentLatest is the registry JSON for the <name>/latest endpoint.
type packumentLatest struct {
	Version string `json:"version"`
}

// registryResolver is the concrete Resolver backed by the npm registry
// HTTP API.
type registryResolver struct {
	baseURL string
	client  *http.Client
}

// NewRegistryResolver creates a Resolver that queries the given registry
// base URL (e.g. DefaultRegistryURL, or an httptest.Server URL in tests).
// A nil client gets a 10 second timeout.
func NewRegistryResolver(baseURL string, client *http.Client) Resolver {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	if client == nil {
		client = &http.Client{Timeout: resolveTimeout}
	}
	return &registryResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Resolve fetches <registry>/<name>/latest and returns its version.
func (r *registryResolver) Resolve(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	// Scoped names keep the "@" but escape the separator, per registry convention.
	escaped := strings.ReplaceAll(name, "/", "%2F")
	url := fmt.Sprintf("%s/%s/latest", r.baseURL, escaped)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("resolver: create request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sprout-cli")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolver: request for %q failed: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolver: %q: unexpected status %d", name, resp.StatusCode)
	}

	var latest packumentLatest
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return "", fmt.Errorf("resolver: decode response for %q: %w", name, err)
	}
	if latest.Version == "" {
		return "", fmt.Errorf("%w: %q", ErrVersionNotFound, name)
	}

	return latest.Version, nil
}
