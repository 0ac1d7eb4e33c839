// Package raceresult fetches registration data from the raceresult.com
// publishing API.
//
// A fetch is two steps: the config document first, then one request per
// row list named by the config, fanned out concurrently over a shared
// HTTP client. Each list request retries independently with exponential
// backoff; the whole fetch fails if any list cannot be retrieved.
package raceresult

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/fredgido/triathlon-dashboard/internal/config"
)

// browserHeaders mimics the registration page's own requests; the API
// rejects clients that look like bots.
var browserHeaders = map[string]string{
	"accept":             "*/*",
	"accept-language":    "en-US,en;q=0.9",
	"cache-control":      "no-cache",
	"dnt":                "1",
	"origin":             "https://zurichcitytriathlon.ch",
	"pragma":             "no-cache",
	"priority":           "u=1, i",
	"referer":            "https://zurichcitytriathlon.ch/",
	"sec-ch-ua":          `"Google Chrome";v="129", "Not=A?Brand";v="8", "Chromium";v="129"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"Windows"`,
	"sec-fetch-dest":     "empty",
	"sec-fetch-mode":     "cors",
	"sec-fetch-site":     "cross-site",
	"user-agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
}

// Client talks to the raceresult publishing API for a single event.
// It holds no state across fetches beyond the underlying HTTP client.
type Client struct {
	http            *http.Client
	baseURL         string
	eventID         string
	maxConcurrent   int
	retryMaxElapsed time.Duration
}

// NewClient creates a client for the configured event.
func NewClient(cfg config.RaceResultConfig) *Client {
	return &Client{
		http:            &http.Client{Timeout: cfg.Timeout},
		baseURL:         cfg.BaseURL,
		eventID:         cfg.EventID,
		maxConcurrent:   cfg.MaxConcurrent,
		retryMaxElapsed: cfg.RetryMaxElapsed,
	}
}

// FetchAll retrieves the config document and every row list it names.
//
// The config request is fatal on any failure: without it there is no
// session key and no list inventory. List requests run concurrently,
// bounded by the configured limit, and all of them are awaited before
// returning; a single list exhausting its retry budget fails the fetch.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	configRaw, err := c.get(ctx, c.configURL(), url.Values{
		"page":      {"participants"},
		"noVisitor": {"1"},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}

	var doc ConfigDocument
	if err := json.Unmarshal(configRaw, &doc); err != nil {
		return nil, fmt.Errorf("fetch config: decode: %w", err)
	}

	slog.Debug("config fetched",
		"event", doc.EventName,
		"contests", len(doc.Contests),
		"splits", len(doc.Splits),
		"lists", len(doc.Lists),
	)

	type listResult struct {
		raw  json.RawMessage
		data RowList
	}
	results := make([]listResult, len(doc.Lists))

	g, gctx := errgroup.WithContext(ctx)
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}
	for i, desc := range doc.Lists {
		i, desc := i, desc
		g.Go(func() error {
			raw, data, err := c.fetchList(gctx, doc.Key, desc.Name)
			if err != nil {
				return err
			}
			results[i] = listResult{raw: raw, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch lists: %w", err)
	}

	snap := &Snapshot{
		Config:    doc,
		ConfigRaw: configRaw,
		Lists:     make(map[string]RowList, len(doc.Lists)),
		ListsRaw:  make(map[string]json.RawMessage, len(doc.Lists)),
	}
	for i, desc := range doc.Lists {
		snap.Lists[desc.Name] = results[i].data
		snap.ListsRaw[desc.Name] = results[i].raw
	}
	return snap, nil
}

// fetchList retrieves a single row list, retrying transient failures with
// exponential backoff up to the configured elapsed-time ceiling.
func (c *Client) fetchList(ctx context.Context, key, name string) (json.RawMessage, RowList, error) {
	params := url.Values{
		"key":      {key},
		"listname": {name},
		"page":     {"participants"},
		"contest":  {"0"},
		"r":        {"all"},
		"l":        {"0"},
	}

	var raw []byte
	op := func() error {
		body, err := c.get(ctx, c.listURL(), params)
		if err != nil {
			slog.Debug("list request failed, retrying", "list", name, "error", err)
			return err
		}
		raw = body
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.retryMaxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, nil, fmt.Errorf("list %q: %w", name, err)
	}

	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("list %q: decode: %w", name, err)
	}
	return raw, resp.Data, nil
}

// get issues one GET with the fixed browser headers and returns the body.
// Any non-2xx status is an error.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) configURL() string {
	return fmt.Sprintf("%s/%s/RRPublish/data/config", c.baseURL, c.eventID)
}

func (c *Client) listURL() string {
	return fmt.Sprintf("%s/%s/RRPublish/data/list", c.baseURL, c.eventID)
}
