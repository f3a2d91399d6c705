package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Kind is the JSON type of a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Node is one value of a parsed document. Object members keep their
// source order in Keys and Values.
type Node struct {
	Kind   Kind
	Scalar string // literal text of Bool, Number and String values
	Keys   []string
	Values []*Node
}

// Parse decodes a single JSON value into an ordered tree.
func Parse(input string) (*Node, error) {
	dec := json.NewDecoder(strings.NewReader(trim(input)))
	dec.UseNumber()

	n, err := parseValue(dec)
	if err != nil {
		return nil, invalid(input, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.Invalid("jsonfmt", "invalid JSON: unexpected data after top-level value")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch v := tok.(type) {
	case nil:
		return &Node{Kind: Null}, nil
	case bool:
		return &Node{Kind: Bool, Scalar: fmt.Sprint(v)}, nil
	case json.Number:
		return &Node{Kind: Number, Scalar: v.String()}, nil
	case string:
		return &Node{Kind: String, Scalar: v}, nil
	case json.Delim:
		if v == '[' {
			n := &Node{Kind: Array}
			for dec.More() {
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.Values = append(n.Values, child)
			}
			_, err := dec.Token()
			return n, err
		}

		n := &Node{Kind: Object}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			child, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.Keys = append(n.Keys, keyTok.(string))
			n.Values = append(n.Values, child)
		}
		_, err := dec.Token()
		return n, err
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// invalid wraps a decoding error, adding the line and column of syntax errors.
func invalid(input string, err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		line, col := position(input, syn.Offset)
		return errs.Invalid("jsonfmt", "invalid JSON at line %d, column %d: %v", line, col, err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return errs.Invalid("jsonfmt", "invalid JSON: unexpected end of input")
	}
	return errs.Invalid("jsonfmt", "invalid JSON: %v", err)
}

// whitespace is the set of JSON insignificant whitespace characters.
const whitespace = " \t\r\n"

func trim(s string) string {
	return strings.Trim(s, whitespace)
}

// position converts a SyntaxError offset, which counts the offending byte
// and is relative to the trimmed input, to a 1-based line and column of
// input.
func position(input string, offset int64) (line, col int) {
	if offset > 0 {
		offset--
	}
	offset += int64(len(input) - len(strings.TrimLeft(input, whitespace)))
	if offset > int64(len(input)) {
		offset = int64(len(input))
	}
	before := input[:offset]
	line = strings.Count(before, "\n") + 1
	col = len(before) - strings.LastIndexByte(before, '\n')
	return line, col
}

// Depth is the nesting depth of n: 0 for scalars, one more than the
// deepest member for arrays and objects.
func (n *Node) Depth() int {
	if n.Kind != Array && n.Kind != Object {
		return 0
	}
	depth := 0
	for _, v := range n.Values {
		if d := v.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// KeyCount counts object keys at every level.
func (n *Node) KeyCount() int {
	count := len(n.Keys)
	for _, v := range n.Values {
		count += v.KeyCount()
	}
	return count
}

// compact renders n as minified JSON.
func (n *Node) compact() string {
	var buf bytes.Buffer
	n.writeJSON(&buf)
	return buf.String()
}

func (n *Node) writeJSON(buf *bytes.Buffer) {
	switch n.Kind {
	case Null:
		buf.WriteString("null")
	case Bool, Number:
		buf.WriteString(n.Scalar)
	case String:
		buf.WriteString(quote(n.Scalar))
	case Array:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			v.writeJSON(buf)
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(k))
			buf.WriteByte(':')
			n.Values[i].writeJSON(buf)
		}
		buf.WriteByte('}')
	}
}
