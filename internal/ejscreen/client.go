// Package ejscreen fetches per-area indicator records from the EPA EJScreen
// REST broker.
package ejscreen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// AreaType selects the broker's geographic addressing scheme.
type AreaType string

const (
	AreaBlockGroup AreaType = "blockgroup"
	AreaCity       AreaType = "city"
)

// FetchError reports a failed fetch for one area. The batch collector logs
// and skips these; they never abort a batch.
type FetchError struct {
	AreaID string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.AreaID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClientConfig configures a Client. Zero values fall back to the broker
// defaults.
type ClientConfig struct {
	BaseURL   string
	Unit      string
	Timeout   time.Duration
	UserAgent string
}

// DefaultBaseURL is the public EJScreen REST broker endpoint.
const DefaultBaseURL = "https://ejscreen.epa.gov/mapper/ejscreenRESTbroker1.aspx"

// Client issues one bounded-timeout GET per area against the broker and
// extracts the flat indicator set from the nested response.
type Client struct {
	client  *http.Client
	baseURL string
	unit    string
	agent   string
}

// NewClient creates a Client from the given config.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Unit == "" {
		cfg.Unit = "9035"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ejscreen-cli/1.0"
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		unit:    cfg.Unit,
		agent:   cfg.UserAgent,
	}
}

// Fetch retrieves the indicator record for one area. nameStr is the display
// name for city-type queries; when empty the area ID is sent as the name.
// Any network error or non-2xx status comes back as a *FetchError.
func (c *Client) Fetch(ctx context.Context, areaID string, areaType AreaType, nameStr string) (*Record, error) {
	if nameStr == "" {
		nameStr = areaID
	}

	q := url.Values{}
	q.Set("namestr", nameStr)
	q.Set("geometry", "")
	q.Set("distance", "")
	q.Set("unit", c.unit)
	q.Set("areatype", string(areaType))
	q.Set("areaid", areaID)
	q.Set("f", "json")

	reqURL := c.baseURL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{AreaID: areaID, Err: eris.Wrap(err, "create request")}
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{AreaID: areaID, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, &FetchError{AreaID: areaID, Err: eris.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &FetchError{AreaID: areaID, Err: eris.Wrap(err, "decode response")}
	}

	zap.L().Debug("fetched area record",
		zap.String("area_id", areaID),
		zap.String("area_type", string(areaType)),
	)

	return newRecord(areaID, &env), nil
}
