package textfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

func TestApply(t *testing.T) {
	tests := []struct {
		action Action
		in     string
		want   string
	}{
		{Uppercase, "Mixed case é", "MIXED CASE É"},
		{Lowercase, "Mixed CASE", "mixed case"},
		{Capitalize, "hello world-wide web_x", "Hello World-Wide Web_x"},
		{TitleCase, "hELLO wORLD-wide", "Hello World-wide"},
		{Trim, "  padded\n", "padded"},
		{RemoveExtraSpace, "  a \t b\n\nc  ", "a b c"},
		{RemoveEmptyLines, "a\n\n  \nb", "a\nb"},
		{RemoveDuplicates, "a\nb\na\nc", "a\nb\nc"},
		{Reverse, "héllo", "olléh"},
		{SortLines, "b\na\nC", "C\na\nb"},
		{WordCount, "one two\nthree", "Word Count: 3\nCharacter Count: 13\nLine Count: 2\n\nOriginal Text:\none two\nthree"},
		{URLEncode, "a b&c/é!", "a%20b%26c%2F%C3%A9!"},
		{URLDecode, "a%20b%26c%2F%C3%A9!", "a b&c/é!"},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, err := Apply(tt.in, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	_, err := Apply("  \n", Uppercase)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Apply("text", "shout")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Apply("100%zz", URLDecode)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestActions_AllApply(t *testing.T) {
	for _, a := range Actions() {
		_, err := Apply("some text", a)
		assert.NoError(t, err, "action %s", a)
	}
}

func TestEncodeURIComponent_Unreserved(t *testing.T) {
	const unreserved = "AZaz09-_.!~*'()"
	assert.Equal(t, unreserved, EncodeURIComponent(unreserved))
	assert.Equal(t, "%3F%3D%2B%23", EncodeURIComponent("?=+#"))
}

const emailText = "Contact Ann@Example.com or bob.smith+news@mail.co.uk. " +
	"Again: ann@example.com, and john..doe@example.com plus bad@host.c"

func TestExtractEmails_Raw(t *testing.T) {
	got := ExtractEmails(emailText, EmailOptions{})

	assert.Equal(t, []string{
		"Ann@Example.com",
		"bob.smith+news@mail.co.uk",
		"ann@example.com",
		"john..doe@example.com",
	}, got.Emails)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 4, got.TotalFound)
	assert.Zero(t, got.DuplicatesRemoved)
	assert.Zero(t, got.InvalidRemoved)
	assert.Equal(t, map[string]int{"example.com": 3, "mail.co.uk": 1}, got.Domains)
}

func TestExtractEmails_Processed(t *testing.T) {
	got := ExtractEmails(emailText, EmailOptions{Dedupe: true, Validate: true, Sort: true})

	assert.Equal(t, []string{"Ann@Example.com", "bob.smith+news@mail.co.uk"}, got.Emails)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 4, got.TotalFound)
	assert.Equal(t, 1, got.DuplicatesRemoved)
	assert.Equal(t, 1, got.InvalidRemoved)
}

func TestExtractEmails_None(t *testing.T) {
	got := ExtractEmails("no addresses here", EmailOptions{Dedupe: true})
	assert.NotNil(t, got.Emails)
	assert.Empty(t, got.Emails)
	assert.Empty(t, got.Domains)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@x.com"))
	assert.False(t, ValidEmail("John <j@x.com>"))
	assert.False(t, ValidEmail("john..doe@example.com"))
}

func TestBase64_RoundTrip(t *testing.T) {
	enc := EncodeBase64([]byte("héllo wörld"), false)
	assert.Equal(t, "aMOpbGxvIHfDtnJsZA==", enc)

	text, err := DecodeBase64Text(enc, false)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", text)
}

func TestBase64_URLSafe(t *testing.T) {
	data := []byte{0xfb, 0xff}
	assert.Equal(t, "+/8=", EncodeBase64(data, false))
	assert.Equal(t, "-_8=", EncodeBase64(data, true))

	got, err := DecodeBase64("-_8", true)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = DecodeBase64("-_8=", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestDecodeBase64_Lenient(t *testing.T) {
	for _, in := range []string{"aGk=", "aGk", " aG\nk= ", "data:text/plain;base64,aGk="} {
		got, err := DecodeBase64(in, false)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, "hi", string(got))
	}
}

func TestDecodeBase64_Errors(t *testing.T) {
	_, err := DecodeBase64("  ", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = DecodeBase64("!!!!", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = DecodeBase64Text("/w==", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
