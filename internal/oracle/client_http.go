package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	id "bursar/pkg/domain"
	"bursar/pkg/platform/sentinel"
)

// RefSource supplies the current oracle endpoint. The reference is operator
// configurable at runtime, so the client resolves it on every call instead of
// capturing it at construction.
type RefSource interface {
	OracleRef(ctx context.Context) (string, error)
}

// HTTPClient talks to the identity oracle over JSON/HTTP.
type HTTPClient struct {
	refs    RefSource
	httpc   *http.Client
	timeout time.Duration
}

// NewHTTPClient constructs an oracle client with a bounded per-call deadline.
func NewHTTPClient(refs RefSource, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		refs:    refs,
		httpc:   &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (c *HTTPClient) Classify(ctx context.Context, account id.AccountID) (Classification, error) {
	ref, err := c.refs.OracleRef(ctx)
	if err != nil {
		return Classification{}, fmt.Errorf("resolve oracle reference: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/classify/%s", ref, account)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Classification{}, fmt.Errorf("build oracle request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("oracle call failed: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("oracle returned status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var classification Classification
	if err := json.NewDecoder(resp.Body).Decode(&classification); err != nil {
		return Classification{}, fmt.Errorf("decode oracle response: %w", sentinel.ErrUnavailable)
	}
	if !classification.Kind.IsValid() {
		return Classification{}, fmt.Errorf("oracle returned unknown kind %q: %w", classification.Kind, sentinel.ErrUnavailable)
	}
	return classification, nil
}
