package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	id "bursar/pkg/domain"
	"bursar/pkg/platform/sentinel"
)

// HTTPClient instructs an external treasury service to move funds.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type sendRequest struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func (c *HTTPClient) Send(ctx context.Context, to id.AccountID, amount int64) error {
	body, err := json.Marshal(sendRequest{To: to.String(), Amount: amount})
	if err != nil {
		return fmt.Errorf("encode transfer request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("transfer call failed: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("treasury returned status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	return nil
}
