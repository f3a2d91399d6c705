package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

type record struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// exerciseStore runs the Store contract against a backend.
func exerciseStore(t *testing.T, s Store, key string) {
	t.Helper()
	ctx := context.Background()

	var got []record
	ok, err := s.Load(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report not found")

	want := []record{{"a", 1}, {"b", 2.5}}
	require.NoError(t, s.Save(ctx, key, want))

	ok, err = s.Load(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, s.Save(ctx, key, []record{{"c", 3}}))
	got = nil
	_, err = s.Load(ctx, key, &got)
	require.NoError(t, err)
	assert.Equal(t, []record{{"c", 3}}, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(), "conversionHistory")
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "history")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s, "conversionHistory")

	_, err = os.Stat(filepath.Join(dir, "conversionHistory.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileStore_InvalidKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		err := s.Save(context.Background(), key, 1)
		assert.ErrorIs(t, err, errs.ErrInvalidInput, "key %q", key)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	var v []string
	_, err = s.Load(context.Background(), "bad", &v)
	assert.Error(t, err)
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("MINITOOLS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MINITOOLS_TEST_REDIS_URL not set")
	}

	s, err := NewRedisStore(url, "minitools-test")
	require.NoError(t, err)
	defer s.Close()

	key := "history-" + t.Name()
	defer s.Delete(context.Background(), key)

	exerciseStore(t, s, key)
}

func TestRedisStore_Key(t *testing.T) {
	assert.Equal(t, "mt:colorHistory", (&RedisStore{prefix: "mt"}).Key("colorHistory"))
	assert.Equal(t, "a:b", (&RedisStore{}).Key("a", "b"))
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore("not a url", "")
	assert.Error(t, err)
}
