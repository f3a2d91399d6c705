package textfmt

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// EncodeBase64 encodes data with the standard alphabet, or the URL-safe one
// when urlSafe is set. Output is always padded.
func EncodeBase64(data []byte, urlSafe bool) string {
	return encoding(urlSafe).EncodeToString(data)
}

// DecodeBase64 decodes s. Whitespace, a leading data URL header
// ("data:image/png;base64,") and missing padding are tolerated.
func DecodeBase64(s string, urlSafe bool) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ";base64,"); i >= 0 {
			s = s[i+len(";base64,"):]
		}
	}
	if s == "" {
		return nil, errs.Invalid("textfmt", "base64 input is required")
	}

	enc := encoding(urlSafe)
	if len(s)%4 != 0 {
		enc = enc.WithPadding(base64.NoPadding)
	}
	data, err := enc.DecodeString(s)
	if err != nil {
		return nil, errs.Invalid("textfmt", "invalid base64: %v", err)
	}
	return data, nil
}

// DecodeBase64Text decodes s and requires the result to be UTF-8 text.
func DecodeBase64Text(s string, urlSafe bool) (string, error) {
	data, err := DecodeBase64(s, urlSafe)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errs.Invalid("textfmt", "decoded data is not UTF-8 text; decode to a file instead")
	}
	return string(data), nil
}

func encoding(urlSafe bool) *base64.Encoding {
	if urlSafe {
		return base64.URLEncoding
	}
	return base64.StdEncoding
}
