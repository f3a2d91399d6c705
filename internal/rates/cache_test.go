package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// scriptedSource returns results in order, repeating the last one.
type scriptedSource struct {
	mu      sync.Mutex
	results []result
	calls   int
}

type result struct {
	table Table
	err   error
}

func (s *scriptedSource) Fetch(ctx context.Context) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[min(s.calls, len(s.results)-1)]
	s.calls++
	return r.table, r.err
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestCache_EmptyIsUnavailable(t *testing.T) {
	c := NewCache(&scriptedSource{results: []result{{err: errors.New("down")}}})

	_, err := c.Rates()
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
	assert.True(t, c.UpdatedAt().IsZero())
}

func TestCache_Fallback(t *testing.T) {
	c := NewCache(&scriptedSource{results: []result{{err: errors.New("down")}}},
		WithFallback(Table(DefaultStatic())))

	table, err := c.Rates()
	require.NoError(t, err)
	assert.Equal(t, 0.85, table["EUR"])
}

func TestCache_RefreshReplacesTable(t *testing.T) {
	src := &scriptedSource{results: []result{
		{table: Table{"USD": 1, "EUR": 0.9}},
		{table: Table{"USD": 1, "EUR": 0.8}},
	}}
	c := NewCache(src, WithFallback(Table{"USD": 1, "EUR": 0.5}))

	require.NoError(t, c.Refresh(context.Background()))
	table, err := c.Rates()
	require.NoError(t, err)
	assert.Equal(t, 0.9, table["EUR"])
	assert.False(t, c.UpdatedAt().IsZero())

	require.NoError(t, c.Refresh(context.Background()))
	table, _ = c.Rates()
	assert.Equal(t, 0.8, table["EUR"])
}

func TestCache_FailedRefreshKeepsPrevious(t *testing.T) {
	src := &scriptedSource{results: []result{
		{table: Table{"USD": 1, "EUR": 0.9}},
		{err: errs.RatesUnavailable("test", "down")},
	}}
	c := NewCache(src)

	require.NoError(t, c.Refresh(context.Background()))
	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)

	table, err := c.Rates()
	require.NoError(t, err)
	assert.Equal(t, 0.9, table["EUR"])
}

func TestCache_RatesReturnsCopy(t *testing.T) {
	c := NewCache(&scriptedSource{results: []result{{table: Table{"USD": 1}}}})
	require.NoError(t, c.Refresh(context.Background()))

	table, _ := c.Rates()
	table["USD"] = 99

	again, _ := c.Rates()
	assert.Equal(t, 1.0, again["USD"])
}

func TestCache_RunStopsOnCancel(t *testing.T) {
	src := &scriptedSource{results: []result{{table: Table{"USD": 1}}}}
	c := NewCache(src, WithLogger(zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return src.Calls() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	_, err := c.Rates()
	assert.NoError(t, err)
}

func TestCache_RunWithoutIntervalRefreshesOnce(t *testing.T) {
	src := &scriptedSource{results: []result{{err: errors.New("down")}}}
	c := NewCache(src)

	c.Run(context.Background(), 0)
	assert.Equal(t, 1, src.Calls())
}

func TestStatic(t *testing.T) {
	table, err := DefaultStatic().Rates()
	require.NoError(t, err)
	assert.Len(t, table, 7)
	assert.Equal(t, 1.0, table["USD"])
	assert.Equal(t, 74.0, table["INR"])

	_, err = Static{}.Rates()
	assert.ErrorIs(t, err, errs.ErrRatesUnavailable)
}
