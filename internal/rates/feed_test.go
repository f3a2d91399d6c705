package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// feedServer serves the given status codes in order, then 200 with body.
func feedServer(t *testing.T, body string, statuses ...int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1))
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func fastFeed(url string, retries int) *Feed {
	return NewFeed(url,
		WithTimeout(2*time.Second),
		WithMaxRetries(retries),
		WithRetryInterval(time.Millisecond),
	)
}

func TestFeed_Fetch(t *testing.T) {
	srv, calls := feedServer(t, `{"base":"USD","rates":{"USD":1,"EUR":0.92,"JPY":151.2}}`)

	table, err := fastFeed(srv.URL, 3).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Table{"USD": 1, "EUR": 0.92, "JPY": 151.2}, table)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFeed_RetriesServerErrors(t *testing.T) {
	srv, calls := feedServer(t, `{"rates":{"USD":1}}`, http.StatusBadGateway, http.StatusServiceUnavailable)

	table, err := fastFeed(srv.URL, 3).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, table["USD"])
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestFeed_GivesUpAfterMaxRetries(t *testing.T) {
	srv, calls := feedServer(t, `{"rates":{"USD":1}}`,
		http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError)

	_, err := fastFeed(srv.URL, 1).Fetch(context.Background())
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestFeed_ClientErrorNotRetried(t *testing.T) {
	srv, calls := feedServer(t, `{"rates":{"USD":1}}`, http.StatusNotFound)

	_, err := fastFeed(srv.URL, 3).Fetch(context.Background())
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFeed_BadBodies(t *testing.T) {
	for name, body := range map[string]string{
		"malformed": `{"rates":`,
		"empty":     `{"rates":{}}`,
		"missing":   `{"base":"USD"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, calls := feedServer(t, body)
			_, err := fastFeed(srv.URL, 3).Fetch(context.Background())
			assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestFeed_CancelledContext(t *testing.T) {
	srv, _ := feedServer(t, `{"rates":{"USD":1}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastFeed(srv.URL, 3).Fetch(ctx)
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
}

func TestNewFeed_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultFeedURL, NewFeed("").url)
}

func TestTable_Clone(t *testing.T) {
	orig := Table{"USD": 1}
	c := orig.Clone()
	c["USD"] = 2
	assert.Equal(t, 1.0, orig["USD"])
	assert.Nil(t, Table(nil).Clone())
}
