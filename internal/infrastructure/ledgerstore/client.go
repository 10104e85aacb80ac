// Package ledgerstore is a typed client for the hosted REST tabular
// data API that holds agencies, payments, and payout state. Queries
// build URL filter parameters the way the service expects
// (column=op.value) and decode straight into row structs.
package ledgerstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sharedconfig "liken/internal/shared/config"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// Maximum response body size (4MB)
	maxResponseSize = 4 << 20
)

// Client talks to one ledger store instance with a service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg sharedconfig.LedgerStoreConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// From starts a query against a table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// QueryBuilder accumulates filters for one request. Builders are
// single-use and not safe for concurrent use.
type QueryBuilder struct {
	client *Client
	table  string
	params url.Values
}

// Select restricts the returned columns. Embedded resources use the
// service's foreign-table syntax, e.g. "id,brands(email,company_name)".
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.params.Set("select", columns)
	return q
}

func (q *QueryBuilder) Eq(column string, value string) *QueryBuilder {
	q.params.Add(column, "eq."+value)
	return q
}

func (q *QueryBuilder) In(column string, values []string) *QueryBuilder {
	q.params.Add(column, "in.("+strings.Join(values, ",")+")")
	return q
}

func (q *QueryBuilder) IsNull(column string) *QueryBuilder {
	q.params.Add(column, "is.null")
	return q
}

// OnConflict names the unique column upserts merge on.
func (q *QueryBuilder) OnConflict(column string) *QueryBuilder {
	q.params.Set("on_conflict", column)
	return q
}

// Order sorts results by column; pass descending=true for newest first.
func (q *QueryBuilder) Order(column string, descending bool) *QueryBuilder {
	direction := "asc"
	if descending {
		direction = "desc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

func (q *QueryBuilder) Limit(limit int) *QueryBuilder {
	q.params.Set("limit", strconv.Itoa(limit))
	return q
}

func (q *QueryBuilder) Offset(offset int) *QueryBuilder {
	q.params.Set("offset", strconv.Itoa(offset))
	return q
}

// Get executes a select and decodes the JSON array into dest.
func (q *QueryBuilder) Get(ctx context.Context, dest interface{}) error {
	return q.client.do(ctx, http.MethodGet, q.url(), nil, dest, "")
}

// Insert posts rows and, when dest is non-nil, decodes the created
// representation back into it.
func (q *QueryBuilder) Insert(ctx context.Context, body interface{}, dest interface{}) error {
	prefer := "return=minimal"
	if dest != nil {
		prefer = "return=representation"
	}
	return q.client.do(ctx, http.MethodPost, q.url(), body, dest, prefer)
}

// Upsert posts rows with merge-on-conflict semantics.
func (q *QueryBuilder) Upsert(ctx context.Context, body interface{}, dest interface{}) error {
	prefer := "resolution=merge-duplicates"
	if dest != nil {
		prefer += ",return=representation"
	}
	return q.client.do(ctx, http.MethodPost, q.url(), body, dest, prefer)
}

// Update patches every row matching the accumulated filters. When dest
// is non-nil the updated rows are decoded into it, which callers use to
// count how many rows a bulk update touched.
func (q *QueryBuilder) Update(ctx context.Context, patch interface{}, dest interface{}) error {
	prefer := "return=minimal"
	if dest != nil {
		prefer = "return=representation"
	}
	return q.client.do(ctx, http.MethodPatch, q.url(), patch, dest, prefer)
}

func (q *QueryBuilder) url() string {
	u := q.client.baseURL + "/" + q.table
	if encoded := q.params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (c *Client) do(ctx context.Context, method, requestURL string, body, dest interface{}, prefer string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger store request failed: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseSize)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(limited, 2048))
		return fmt.Errorf("ledger store returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(limited).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode ledger store response: %w", err)
	}
	return nil
}
