package jsonfmt

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// DefaultXMLRoot names the outermost element of ToXML output.
const DefaultXMLRoot = "root"

// ToYAML converts input to a block-style YAML document.
func ToYAML(input string) (string, error) {
	n, err := Parse(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n.yamlNode()); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (n *Node) yamlNode() *yaml.Node {
	switch n.Kind {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: n.Scalar}
	case Number:
		tag := "!!int"
		if strings.ContainsAny(n.Scalar, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.Scalar}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Scalar}
	case Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range n.Values {
			seq.Content = append(seq.Content, v.yamlNode())
		}
		return seq
	}

	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range n.Keys {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			n.Values[i].yamlNode())
	}
	return m
}

// ToXML converts input to indented XML under an element named root
// (DefaultXMLRoot when empty). Array members become <item> elements and
// keys that are not valid XML names are rewritten with underscores.
func ToXML(input, root string) (string, error) {
	n, err := Parse(input)
	if err != nil {
		return "", err
	}
	if root == "" {
		root = DefaultXMLRoot
	}

	var buf bytes.Buffer
	n.writeXML(&buf, xmlName(root), 0)
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (n *Node) writeXML(buf *bytes.Buffer, tag string, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n.Kind {
	case Array, Object:
		if len(n.Values) == 0 {
			fmt.Fprintf(buf, "%s<%s></%s>\n", pad, tag, tag)
			return
		}
		fmt.Fprintf(buf, "%s<%s>\n", pad, tag)
		for i, v := range n.Values {
			child := "item"
			if n.Kind == Object {
				child = xmlName(n.Keys[i])
			}
			v.writeXML(buf, child, depth+1)
		}
		fmt.Fprintf(buf, "%s</%s>\n", pad, tag)
	default:
		fmt.Fprintf(buf, "%s<%s>", pad, tag)
		if n.Kind != Null {
			_ = xml.EscapeText(buf, []byte(n.Scalar))
		}
		fmt.Fprintf(buf, "</%s>\n", tag)
	}
}

// xmlName maps s to a valid XML element name.
func xmlName(s string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, s)
	if name == "" {
		return "_"
	}
	if first := []rune(name)[0]; !unicode.IsLetter(first) && first != '_' {
		name = "_" + name
	}
	return name
}

// ToCSV converts an object, or an array of objects, to CSV. The header row
// lists every key in the order first seen; missing values are empty and
// nested values are written as compact JSON.
func ToCSV(input string) (string, error) {
	n, err := Parse(input)
	if err != nil {
		return "", err
	}

	rows := []*Node{n}
	if n.Kind == Array {
		rows = n.Values
	}
	if len(rows) == 0 {
		return "", nil
	}

	var header []string
	seen := map[string]bool{}
	for _, row := range rows {
		if row.Kind != Object {
			return "", errs.Invalid("jsonfmt", "CSV conversion needs an object or an array of objects")
		}
		for _, k := range row.Keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	if len(header) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, row := range rows {
		record := make([]string, len(header))
		for i, k := range row.Keys {
			record[indexOf(header, k)] = row.Values[i].cell()
		}
		_ = w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (n *Node) cell() string {
	switch n.Kind {
	case Null:
		return ""
	case Array, Object:
		return n.compact()
	}
	return n.Scalar
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
