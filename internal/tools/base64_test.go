package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/history"
)

func TestBase64Tool_TextRoundTrip(t *testing.T) {
	ctx := context.Background()
	tool := NewBase64Tool(history.NewMemoryStore(), 10)

	enc, err := tool.Convert(ctx, Base64Request{Text: "héllo wörld"})
	require.NoError(t, err)
	assert.Equal(t, "aMOpbGxvIHfDtnJsZA==", enc.Output)
	assert.Equal(t, DirectionEncode, enc.Direction)
	assert.Equal(t, SourceText, enc.Type)
	assert.Equal(t, len(enc.Output), enc.Bytes)

	dec, err := tool.Convert(ctx, Base64Request{Text: enc.Output, Decode: true})
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", dec.Output)
	assert.Equal(t, DirectionDecode, dec.Direction)

	hist, err := tool.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, DirectionDecode, hist[0].Direction)
	assert.Equal(t, "aMOpbGxvIHfDtnJsZA==", hist[0].Input)
	assert.Equal(t, "héllo wörld", hist[0].Output)
	assert.Equal(t, "héllo wörld", hist[1].Input)
}

func TestBase64Tool_PreviewTruncated(t *testing.T) {
	ctx := context.Background()
	tool := NewBase64Tool(history.NewMemoryStore(), 10)

	long := strings.Repeat("x", 200)
	_, err := tool.Convert(ctx, Base64Request{Text: long})
	require.NoError(t, err)

	hist, err := tool.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, strings.Repeat("x", Base64PreviewLength)+"...", hist[0].Input)
	assert.True(t, strings.HasSuffix(hist[0].Output, "..."))
}

func TestBase64Tool_Files(t *testing.T) {
	ctx := context.Background()
	tool := NewBase64Tool(history.NewMemoryStore(), 10)
	dir := t.TempDir()

	binary := []byte{0x00, 0xff, 0x10, 0x80}
	src := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(src, binary, 0o644))

	enc, err := tool.Convert(ctx, Base64Request{Path: src})
	require.NoError(t, err)
	assert.Equal(t, "AP8QgA==", enc.Output)
	assert.Equal(t, SourceFile, enc.Type)

	encoded := filepath.Join(dir, "blob.b64")
	require.NoError(t, os.WriteFile(encoded, []byte(enc.Output+"\n"), 0o644))

	// Binary output needs a file.
	_, err = tool.Convert(ctx, Base64Request{Path: encoded, Decode: true})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	out := filepath.Join(dir, "restored.bin")
	dec, err := tool.Convert(ctx, Base64Request{Path: encoded, Decode: true, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, dec.OutputPath)
	assert.Empty(t, dec.Output)
	assert.Equal(t, 4, dec.Bytes)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, binary, got)

	hist, err := tool.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "blob.b64", hist[0].Input)
	assert.Equal(t, "restored.bin", hist[0].Output)
	assert.Equal(t, SourceFile, hist[0].Type)
}

func TestBase64Tool_Errors(t *testing.T) {
	ctx := context.Background()
	tool := NewBase64Tool(history.NewMemoryStore(), 10)

	_, err := tool.Convert(ctx, Base64Request{})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = tool.Convert(ctx, Base64Request{Text: "a", Path: "b"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = tool.Convert(ctx, Base64Request{Text: "not base64!", Decode: true})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = tool.Convert(ctx, Base64Request{Path: t.TempDir()})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = tool.Convert(ctx, Base64Request{Path: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	hist, err := tool.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist)
}
