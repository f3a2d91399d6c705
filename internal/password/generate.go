package password

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Character classes.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	Vowels    = "aeiou"

	// Similar are characters easily confused with one another.
	Similar = "il1Lo0O"
	// Ambiguous are symbols that are awkward to type or quote.
	Ambiguous = "{}[]()/\\'\"`~,;:.<>"
)

// Length and word-count bounds.
const (
	MinLength        = 4
	MaxLength        = 128
	DefaultLength    = 16
	MinWords         = 1
	MaxWords         = 20
	DefaultWords     = 4
	DefaultSeparator = "-"
)

// Wordlist is the passphrase vocabulary.
var Wordlist = []string{
	"apple", "brave", "cloud", "dance", "earth", "flame", "globe", "heart",
	"image", "jolly", "king", "light", "music", "night", "ocean", "peace",
	"quiet", "river", "star", "tree", "unity", "voice", "water", "xray",
	"young", "zebra", "alpha", "beta", "gamma", "delta", "echo", "foxtrot",
	"hotel", "india", "juliet", "kilo", "lima", "mike", "november", "oscar",
	"papa", "quebec", "romeo", "sierra", "tango", "uniform", "victor", "whiskey",
}

// Options selects the characters of a random password.
type Options struct {
	Length           int
	Upper            bool
	Lower            bool
	Digits           bool
	Symbols          bool
	ExcludeSimilar   bool // drops Similar from the letter and digit classes
	ExcludeAmbiguous bool // drops Ambiguous from the symbol class
	// Pattern overrides every other option when non-empty.
	Pattern string
}

// DefaultOptions enables every class at DefaultLength.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Generator draws characters and words from a random source.
type Generator struct {
	rand io.Reader
}

// New creates a Generator reading from r; a nil r uses crypto/rand.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Charset returns the characters opts draws from. With no class enabled it
// falls back to lowercase letters.
func Charset(opts Options) string {
	var b strings.Builder
	if opts.Upper {
		b.WriteString(without(Uppercase, opts.ExcludeSimilar, Similar))
	}
	if opts.Lower {
		b.WriteString(without(Lowercase, opts.ExcludeSimilar, Similar))
	}
	if opts.Digits {
		b.WriteString(without(Digits, opts.ExcludeSimilar, Similar))
	}
	if opts.Symbols {
		b.WriteString(without(Symbols, opts.ExcludeAmbiguous, Ambiguous))
	}
	if b.Len() == 0 {
		return without(Lowercase, opts.ExcludeSimilar, Similar)
	}
	return b.String()
}

// Generate returns a password built from opts.
func (g *Generator) Generate(opts Options) (string, error) {
	if opts.Pattern != "" {
		return g.FromPattern(opts.Pattern)
	}
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", errs.Invalid("password", "length must be between %d and %d, got %d", MinLength, MaxLength, opts.Length)
	}

	charset := Charset(opts)
	out := make([]byte, opts.Length)
	for i := range out {
		c, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	return string(out), nil
}

// FromPattern expands pattern; see the package documentation for the
// placeholder letters.
func (g *Generator) FromPattern(pattern string) (string, error) {
	if len(pattern) > MaxLength {
		return "", errs.Invalid("password", "pattern must be at most %d characters", MaxLength)
	}

	var b strings.Builder
	for _, r := range pattern {
		charset, ok := patternClass(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		c, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

// Passphrase joins words random Wordlist entries with separator.
func (g *Generator) Passphrase(words int, separator string) (string, error) {
	if words < MinWords || words > MaxWords {
		return "", errs.Invalid("password", "word count must be between %d and %d, got %d", MinWords, MaxWords, words)
	}

	picked := make([]string, words)
	for i := range picked {
		n, err := g.intn(len(Wordlist))
		if err != nil {
			return "", err
		}
		picked[i] = Wordlist[n]
	}
	return strings.Join(picked, separator), nil
}

func patternClass(r rune) (string, bool) {
	switch r {
	case 'C':
		return without(Uppercase, true, Similar), true
	case 'c', 'a':
		return without(Lowercase, true, Similar), true
	case 'V':
		return strings.ToUpper(Vowels), true
	case 'v':
		return Vowels, true
	case 'A':
		return without(Uppercase+Lowercase, true, Similar), true
	case '#':
		return without(Digits, true, Similar), true
	case '!':
		return without(Symbols, true, Ambiguous), true
	case 'x':
		return without(Uppercase+Lowercase+Digits, true, Similar), true
	case '*':
		return without(Uppercase+Lowercase+Digits+Symbols, true, Similar+Ambiguous), true
	}
	return "", false
}

func without(set string, exclude bool, chars string) string {
	if !exclude {
		return set
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, set)
}

func (g *Generator) pick(charset string) (byte, error) {
	n, err := g.intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// intn returns a uniform integer in [0, n).
func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}
