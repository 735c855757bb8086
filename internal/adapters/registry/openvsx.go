package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// OpenVSXResolver probes the primary registry for direct asset URLs
type OpenVSXResolver struct {
	baseURL string
	client  *http.Client
}

// NewOpenVSXResolver creates a resolver against the given registry
// base URL, empty meaning the default public instance
func NewOpenVSXResolver(baseURL string) *OpenVSXResolver {
	if baseURL == "" {
		baseURL = domain.DefaultRegistryURL
	}
	return &OpenVSXResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ensure it implements the interface
var _ ports.Resolver = (*OpenVSXResolver)(nil)

// Resolve issues a single GET against the registry. Transport failures
// and non-success statuses degrade to an unavailable resolution, no
// retries; only a success response that cannot be decoded is an error.
func (r *OpenVSXResolver) Resolve(ctx context.Context, ext domain.DeclaredExtension) (domain.Resolution, error) {
	url := fmt.Sprintf("%s/%s", r.baseURL, domain.LookupPath(ext.ID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Resolution{Available: false}, nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Resolution{Available: false}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Resolution{Available: false}, nil
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return domain.Resolution{}, fmt.Errorf("%w for %s: %v", domain.ErrMalformedResponse, ext.ID, err)
	}

	// The registry exposes the asset URL at either of two locations
	if downloadURL, ok := lookupString(doc, "files", "download"); ok {
		return domain.Resolution{Available: true, URL: downloadURL}, nil
	}
	if downloadURL, ok := lookupString(doc, "downloads", "universal"); ok {
		return domain.Resolution{Available: true, URL: downloadURL}, nil
	}

	// Known to the registry but not directly retrievable from it
	return domain.Resolution{Available: false}, nil
}

// lookupString walks nested JSON objects and returns the string value
// at the given path
func lookupString(doc map[string]any, path ...string) (string, bool) {
	var current any = doc
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = obj[key]
		if !ok {
			return "", false
		}
	}
	s, ok := current.(string)
	return s, ok
}
