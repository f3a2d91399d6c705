package textfmt

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/textstats"
)

// Action names a text transformation.
type Action string

const (
	Uppercase        Action = "uppercase"
	Lowercase        Action = "lowercase"
	Capitalize       Action = "capitalize"
	TitleCase        Action = "titlecase"
	Trim             Action = "trim"
	RemoveExtraSpace Action = "remove_extra_spaces"
	RemoveEmptyLines Action = "remove_empty_lines"
	RemoveDuplicates Action = "remove_duplicate_lines"
	Reverse          Action = "reverse"
	SortLines        Action = "sort_lines"
	WordCount        Action = "word_count"
	URLEncode        Action = "url_encode"
	URLDecode        Action = "url_decode"
)

// Actions lists every supported action in display order.
func Actions() []Action {
	return []Action{
		Uppercase, Lowercase, Capitalize, TitleCase, Trim, RemoveExtraSpace,
		RemoveEmptyLines, RemoveDuplicates, Reverse, SortLines, WordCount,
		URLEncode, URLDecode,
	}
}

var (
	wordStart = regexp.MustCompile(`\b\w`)
	titleWord = regexp.MustCompile(`\w\S*`)
	spaceRun  = regexp.MustCompile(`\s+`)
)

// Apply runs action on text.
func Apply(text string, action Action) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errs.Invalid("textfmt", "text is required")
	}

	switch action {
	case Uppercase:
		return strings.ToUpper(text), nil
	case Lowercase:
		return strings.ToLower(text), nil
	case Capitalize:
		return wordStart.ReplaceAllStringFunc(text, strings.ToUpper), nil
	case TitleCase:
		return titleWord.ReplaceAllStringFunc(text, titleCase), nil
	case Trim:
		return strings.TrimSpace(text), nil
	case RemoveExtraSpace:
		return strings.TrimSpace(spaceRun.ReplaceAllString(text, " ")), nil
	case RemoveEmptyLines:
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" {
				kept = append(kept, line)
			}
		}
		return strings.Join(kept, "\n"), nil
	case RemoveDuplicates:
		seen := map[string]bool{}
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if !seen[line] {
				seen[line] = true
				kept = append(kept, line)
			}
		}
		return strings.Join(kept, "\n"), nil
	case Reverse:
		runes := []rune(text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	case SortLines:
		lines := strings.Split(text, "\n")
		sort.Strings(lines)
		return strings.Join(lines, "\n"), nil
	case WordCount:
		return fmt.Sprintf("Word Count: %d\nCharacter Count: %d\nLine Count: %d\n\nOriginal Text:\n%s",
			textstats.CountWords(text), utf8.RuneCountInString(text), strings.Count(text, "\n")+1, text), nil
	case URLEncode:
		return EncodeURIComponent(text), nil
	case URLDecode:
		out, err := url.PathUnescape(text)
		if err != nil {
			return "", errs.Invalid("textfmt", "invalid percent-encoding: %v", err)
		}
		return out, nil
	}
	return "", errs.Invalid("textfmt", "unknown action %q", action)
}

// titleCase upper-cases the first rune of word and lower-cases the rest.
func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return strings.ToUpper(string(r)) + strings.ToLower(word[size:])
}

// EncodeURIComponent percent-encodes every byte of s except ASCII letters,
// digits and -_.!~*'().
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
