package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"
)

// AdminClient talks to the admin API of a running observer.
type AdminClient struct {
	BaseURL    string
	MaxRetries int
	BaseDelay  time.Duration
	Client     *http.Client
	Logger     *logger.Logger
}

// CountersResponse mirrors GET /api/counters.
type CountersResponse struct {
	Counters models.MCountersSnapshot `json:"counters"`
	Recent   models.MRecentStats      `json:"recent"`
	Errors   int64                    `json:"errors"`
}

// -----------------------------------------------------------------------------

func NewAdminClient(baseURL string, timeout time.Duration, maxRetries int, log *logger.Logger) *AdminClient {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &AdminClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		MaxRetries: maxRetries,
		BaseDelay:  500 * time.Millisecond,
		Client:     &http.Client{Timeout: timeout},
		Logger:     log.Named("AdminClient"),
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries. Only transport errors and 5xx
// answers are retried; a 4xx is returned right away.
func (ac *AdminClient) Get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(ac.BaseURL + path)
	if err != nil {
		return nil, err
	}

	q := reqURL.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	reqURL.RawQuery = q.Encode()
	finalURL := reqURL.String()

	var clientErr error
	res, err := helpers.RetryWithBackoff(ac.Logger, "GET "+path, ac.MaxRetries, ac.BaseDelay, func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
		if err != nil {
			clientErr = err
			return nil, nil
		}

		resp, err := ac.Client.Do(req)
		if err != nil {
			ac.Logger.Debug("Request to %s failed: %v", finalURL, err)
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			clientErr = fmt.Errorf("bad status: %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			return nil, nil
		}
		return body, nil
	})
	if clientErr != nil {
		return nil, clientErr
	}
	if err != nil {
		return nil, fmt.Errorf("max retries exceeded: %w", err)
	}
	return res.([]byte), nil
}

// -----------------------------------------------------------------------------

func (ac *AdminClient) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	body, err := ac.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (ac *AdminClient) FetchCounters(ctx context.Context) (CountersResponse, error) {
	var out CountersResponse
	err := ac.getJSON(ctx, "/api/counters", nil, &out)
	return out, err
}

// -----------------------------------------------------------------------------

func (ac *AdminClient) FetchRecords(ctx context.Context, bucket string, limit int) ([]models.MStoredRecord, error) {
	params := map[string]string{"bucket": bucket}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var out []models.MStoredRecord
	err := ac.getJSON(ctx, "/api/records", params, &out)
	return out, err
}
