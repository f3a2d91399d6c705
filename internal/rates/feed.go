package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// DefaultFeedURL is the public exchangerate-api endpoint for USD-based rates.
const DefaultFeedURL = "https://api.exchangerate-api.com/v4/latest/USD"

// Table maps a currency code to its rate relative to USD.
type Table map[string]float64

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) FeedOption {
	return func(f *Feed) {
		f.client.SetTimeout(d)
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) FeedOption {
	return func(f *Feed) {
		if n < 0 {
			n = 0
		}
		f.maxRetries = uint64(n)
	}
}

// WithRetryInterval sets the initial backoff interval.
func WithRetryInterval(d time.Duration) FeedOption {
	return func(f *Feed) {
		f.retryInterval = d
	}
}

// Feed fetches exchange rates from an exchangerate-api style endpoint that
// responds with {"rates": {"USD": 1, "EUR": 0.92, ...}}.
type Feed struct {
	client        *resty.Client
	url           string
	maxRetries    uint64
	retryInterval time.Duration
}

// NewFeed creates a Feed for url. An empty url uses DefaultFeedURL.
func NewFeed(url string, opts ...FeedOption) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	f := &Feed{
		client: resty.New().
			SetTimeout(10*time.Second).
			SetHeader("Accept", "application/json"),
		url:           url,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Feed) newBackoff(ctx context.Context) backoff.BackOff {
	// BackOff implementations are stateful; always build a fresh one.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.retryInterval
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, f.maxRetries), ctx)
}

// Fetch retrieves the current table.
//
// Transport errors and 5xx responses are retried; other non-200 responses,
// malformed bodies and empty tables fail immediately. Every failure is an
// errs.ErrRatesUnavailable error.
func (f *Feed) Fetch(ctx context.Context) (Table, error) {
	const op = "rates.Fetch"

	var table Table
	err := backoff.Retry(func() error {
		resp, err := f.client.R().SetContext(ctx).Get(f.url)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("request failed: %w", err)
		}

		switch {
		case resp.StatusCode() >= http.StatusInternalServerError:
			return fmt.Errorf("feed returned status %d", resp.StatusCode())
		case resp.StatusCode() != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("feed returned status %d", resp.StatusCode()))
		}

		var body struct {
			Rates Table `json:"rates"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to parse feed response: %w", err))
		}
		if len(body.Rates) == 0 {
			return backoff.Permanent(fmt.Errorf("feed response has no rates"))
		}
		table = body.Rates
		return nil
	}, f.newBackoff(ctx))

	if err != nil {
		return nil, &errs.Error{Kind: errs.KindRatesUnavailable, Op: op, Msg: "fetch failed", Err: err}
	}
	return table, nil
}
