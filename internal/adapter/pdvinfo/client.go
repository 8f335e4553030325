// Package pdvinfo resolves station display names against the
// prix-carburants.gouv.fr station-info endpoint.
package pdvinfo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultBaseURL is the public station-info endpoint; the path is suffixed
// with the station id.
const DefaultBaseURL = "https://www.prix-carburants.gouv.fr/map/recuperer_infos_pdv"

// maxBodySize caps how much of a response is read; the name sits near the
// top of the returned fragment.
const maxBodySize = 1 << 20

// nameRe extracts the display name: the first <strong>-wrapped text in the
// returned HTML fragment, matched across line breaks.
var nameRe = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)

// Client implements domain.NameResolver over the station-info HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a station-info client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// ResolveName fetches the info fragment for one station id and extracts its
// display name. It returns "" with a nil error when the fragment carries no
// name marker; transport failures and non-200 statuses are returned as
// errors for the caller to treat as best-effort misses.
func (c *Client) ResolveName(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// The endpoint only answers AJAX-style requests.
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("station info request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("station info API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	m := nameRe.FindSubmatch(body)
	if m == nil {
		return "", nil
	}
	return strings.TrimSpace(string(m[1])), nil
}
