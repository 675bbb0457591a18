// Package client provides the HTTP client for the Clay table API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// Row is a Clay table row. Fields carries whatever enrichment columns the
// table defines.
type Row struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Table is Clay table metadata.
type Table struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Column describes one column when creating a table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Client handles Clay API requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a new Clay client.
func New(cfg config.ClayConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.GetClayBaseURL(),
		apiKey:     cfg.GetClayAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// GetTable fetches table metadata.
func (c *Client) GetTable(ctx context.Context, tableID string) (Table, error) {
	var table Table
	err := c.do(ctx, http.MethodGet, "/tables/"+tableID, nil, &table)
	return table, err
}

// CreateTable creates a new table.
func (c *Client) CreateTable(ctx context.Context, name string, columns []Column) (Table, error) {
	var table Table
	body := map[string]any{"name": name, "columns": columns}
	err := c.do(ctx, http.MethodPost, "/tables", body, &table)
	return table, err
}

type listRowsResponse struct {
	Rows []Row `json:"rows"`
}

// ListRows lists rows from a table.
func (c *Client) ListRows(ctx context.Context, tableID string, limit, offset int) ([]Row, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var payload listRowsResponse
	path := fmt.Sprintf("/tables/%s/rows?%s", tableID, params.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Rows, nil
}

// GetRow fetches a single row.
func (c *Client) GetRow(ctx context.Context, tableID, rowID string) (Row, error) {
	var row Row
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tables/%s/rows/%s", tableID, rowID), nil, &row)
	return row, err
}

// CreateRow adds a row to a table.
func (c *Client) CreateRow(ctx context.Context, tableID string, fields map[string]any) (Row, error) {
	var row Row
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tables/%s/rows", tableID), fields, &row)
	return row, err
}

// UpdateRow patches fields on an existing row.
func (c *Client) UpdateRow(ctx context.Context, tableID, rowID string, fields map[string]any) (Row, error) {
	var row Row
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tables/%s/rows/%s", tableID, rowID), fields, &row)
	return row, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode clay request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build clay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("clay request failed", "method", method, "path", path, "error", err)
		return apperr.Upstream("clay request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("clay request error", "method", method, "path", path, "status", resp.StatusCode)
		return apperr.Upstream(fmt.Sprintf("clay status %d", resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream("decode clay response", err)
	}
	return nil
}
