// Package rest provides a client for the lending backend's REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 30 * time.Second
	// maxErrorBody caps how much of an error response is read into the error
	maxErrorBody = 4096
)

// APIError is a non-2xx response from the backend
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client reads analytics records from the lending backend
type Client struct {
	baseURL    string
	loanLimit  int
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new backend client. baseURL includes the API prefix,
// e.g. http://localhost:5000/api.
func NewClient(baseURL string, loanLimit int, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		loanLimit: loanLimit,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log.With().Str("component", "backend_client").Logger(),
	}
}

// Name identifies the source in logs and status output
func (c *Client) Name() string {
	return "rest"
}

// HealthCheck asks the backend for a single loan application
func (c *Client) HealthCheck(ctx context.Context) error {
	var envelope map[string]json.RawMessage
	return c.do(ctx, http.MethodGet, "/loans?limit=1", nil, &envelope)
}

// Loans returns loan applications (envelope key "applications")
func (c *Client) Loans(ctx context.Context) ([]domain.LoanRecord, error) {
	path := "/loans"
	if c.loanLimit > 0 {
		path += "?limit=" + strconv.Itoa(c.loanLimit)
	}
	return getList[domain.LoanRecord](ctx, c, path, "applications")
}

// Portfolios returns loan portfolios (envelope key "portfolios")
func (c *Client) Portfolios(ctx context.Context) ([]domain.PortfolioRecord, error) {
	return getList[domain.PortfolioRecord](ctx, c, "/portfolios", "portfolios")
}

// Trades returns executed trades (envelope key "trades")
func (c *Client) Trades(ctx context.Context) ([]domain.TradeRecord, error) {
	return getList[domain.TradeRecord](ctx, c, "/trades", "trades")
}

// Documents returns uploaded documents (envelope key "documents")
func (c *Client) Documents(ctx context.Context) ([]domain.DocumentRecord, error) {
	return getList[domain.DocumentRecord](ctx, c, "/documents", "documents")
}

// MonitoringHistory returns the monitoring records of a loan (envelope key "history")
func (c *Client) MonitoringHistory(ctx context.Context, loanID string) ([]domain.MonitoringRecord, error) {
	return getList[domain.MonitoringRecord](ctx, c, "/monitoring/history/"+url.PathEscape(loanID), "history")
}

// Alerts returns the backend's compliance alerts (envelope key "alerts")
func (c *Client) Alerts(ctx context.Context) ([]domain.AlertRecord, error) {
	return getList[domain.AlertRecord](ctx, c, "/monitoring/alerts", "alerts")
}

// RateHistory returns the stored rate adjustments of a loan (envelope key "history")
func (c *Client) RateHistory(ctx context.Context, loanID string) ([]domain.RateHistoryEntry, error) {
	return getList[domain.RateHistoryEntry](ctx, c, "/rates/history/"+url.PathEscape(loanID), "history")
}

// Savings returns the borrower savings of a loan, or nil when the backend has none
func (c *Client) Savings(ctx context.Context, loanID string) (*domain.SavingsRecord, error) {
	var rec domain.SavingsRecord
	err := c.do(ctx, http.MethodGet, "/rates/savings/"+url.PathEscape(loanID), nil, &rec)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LedgerBlocks returns ledger blocks, newest first (envelope key "blocks")
func (c *Client) LedgerBlocks(ctx context.Context) ([]domain.LedgerBlock, error) {
	return getList[domain.LedgerBlock](ctx, c, "/ledger/query", "blocks")
}

// ValidateLedger asks the backend to verify the ledger hash chain
func (c *Client) ValidateLedger(ctx context.Context) (domain.LedgerValidation, error) {
	var v domain.LedgerValidation
	if err := c.do(ctx, http.MethodGet, "/ledger/validate", nil, &v); err != nil {
		return domain.LedgerValidation{}, err
	}
	return v, nil
}

// CalculateRate asks the backend to compute a rate adjustment for a loan
func (c *Client) CalculateRate(ctx context.Context, loanID string) (*domain.RateAdjustment, error) {
	var adj domain.RateAdjustment
	if err := c.do(ctx, http.MethodPost, "/rates/calculate/"+url.PathEscape(loanID), struct{}{}, &adj); err != nil {
		return nil, err
	}
	if adj.LoanID == "" {
		adj.LoanID = loanID
	}
	return &adj, nil
}

// getList fetches path and decodes the array stored under key.
// A missing or null key decodes to an empty slice.
func getList[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}

	raw, ok := envelope[key]
	if !ok || string(raw) == "null" {
		c.log.Debug().Str("path", path).Str("key", key).Msg("Response has no records under key")
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %q from %s: %w", key, path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from the body, falling back to the raw text
func errorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
