package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// DefaultIndent is the indent width used when none is given.
const DefaultIndent = 2

// MaxIndent is the widest accepted indent.
const MaxIndent = 8

// Stats describes a JSON text.
type Stats struct {
	Bytes int    `json:"bytes"`
	Size  string `json:"size"` // Bytes in human units, e.g. "1.5 KB"
	Lines int    `json:"lines"`
	Depth int    `json:"depth"`
	Keys  int    `json:"keys"`
}

// Validation is the outcome of Validate.
type Validation struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Indent returns the indent string for spaces (0 selects DefaultIndent) or
// a single tab when tabs is set.
func Indent(spaces int, tabs bool) (string, error) {
	if tabs {
		return "\t", nil
	}
	if spaces == 0 {
		spaces = DefaultIndent
	}
	if spaces < 1 || spaces > MaxIndent {
		return "", errs.Invalid("jsonfmt", "indent must be between 1 and %d, got %d", MaxIndent, spaces)
	}
	return strings.Repeat(" ", spaces), nil
}

// Format pretty-prints input with indent per level.
func Format(input, indent string) (string, error) {
	src, err := source(input)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", indent); err != nil {
		return "", invalid(input, err)
	}
	return buf.String(), nil
}

// Minify removes all insignificant whitespace from input.
func Minify(input string) (string, error) {
	src, err := source(input)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, src); err != nil {
		return "", invalid(input, err)
	}
	return buf.String(), nil
}

// SortKeys pretty-prints input with object keys sorted at every level.
func SortKeys(input, indent string) (string, error) {
	src, err := source(input)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", invalid(input, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errs.Invalid("jsonfmt", "invalid JSON: unexpected data after top-level value")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Validate reports whether input is a single well-formed JSON value and,
// if not, where parsing failed.
func Validate(input string) Validation {
	src := trim(input)
	if src == "" {
		return Validation{Error: "input is empty"}
	}

	var raw json.RawMessage
	err := json.Unmarshal([]byte(src), &raw)
	if err == nil {
		return Validation{Valid: true}
	}

	v := Validation{Error: err.Error()}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		v.Line, v.Column = position(input, syn.Offset)
	}
	return v
}

// Analyze computes Stats for input, which must be valid JSON.
func Analyze(input string) (*Stats, error) {
	n, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Bytes: len(input),
		Size:  FormatBytes(len(input)),
		Lines: strings.Count(input, "\n") + 1,
		Depth: n.Depth(),
		Keys:  n.KeyCount(),
	}, nil
}

// Escape returns input as a quoted JSON string literal.
func Escape(input string) string {
	return quote(input)
}

// Unescape decodes the JSON string escapes in input. Surrounding double
// quotes are optional.
func Unescape(input string) (string, error) {
	s := strings.TrimSpace(input)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return "", errs.Invalid("jsonfmt", "invalid escaped string: %v", err)
	}
	return out, nil
}

// FormatBytes renders n bytes with binary units to at most two decimals,
// e.g. "0 Bytes", "512 Bytes", "1.5 KB".
func FormatBytes(n int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	v, i := float64(n), 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

func source(input string) ([]byte, error) {
	src := trim(input)
	if src == "" {
		return nil, errs.Invalid("jsonfmt", "input is required")
	}
	return []byte(src), nil
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
