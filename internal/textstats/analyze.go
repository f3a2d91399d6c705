package textstats

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

// TopWordsLimit is the number of entries returned in Stats.TopWords.
const TopWordsLimit = 10

var (
	sentenceEnd   = regexp.MustCompile(`[.!?]+(\s|$)`)
	paragraphSep  = regexp.MustCompile(`\n+`)
	nonWord       = regexp.MustCompile(`[^\w\s]`)
	silentSuffix  = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingY      = regexp.MustCompile(`^y`)
	vowelGroup    = regexp.MustCompile(`[aeiouy]{1,2}`)
	sentenceBreak = regexp.MustCompile(`([.!?])\s*([A-Z])`)
)

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Readability is a Flesch reading-ease score and its grade band.
type Readability struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// Stats summarizes a text.
type Stats struct {
	Words             int          `json:"words"`
	Characters        int          `json:"characters"`
	CharactersNoSpace int          `json:"characters_no_spaces"`
	Sentences         int          `json:"sentences"`
	Paragraphs        int          `json:"paragraphs"`
	ReadingTime       string       `json:"reading_time"`
	TopWords          []WordCount  `json:"top_words"`
	AvgSentenceLength float64      `json:"avg_sentence_length"`  // words per sentence
	AvgParagraphLen   float64      `json:"avg_paragraph_length"` // words per paragraph
	AvgWordLength     float64      `json:"avg_word_length"`      // non-space characters per word
	WordDensity       float64      `json:"word_density"`         // words per 100 characters
	Readability       *Readability `json:"readability,omitempty"`
}

// Analyze computes Stats for text. Empty or whitespace-only text yields
// zero counts, an empty TopWords list and no Readability.
func Analyze(text string) Stats {
	words := CountWords(text)
	sentences := CountSentences(text)
	paragraphs := CountParagraphs(text)
	chars := utf8.RuneCountInString(text)
	noSpace := utf8.RuneCountInString(stripSpace(text))

	s := Stats{
		Words:             words,
		Characters:        chars,
		CharactersNoSpace: noSpace,
		Sentences:         sentences,
		Paragraphs:        paragraphs,
		ReadingTime:       ReadingTime(words),
		TopWords:          TopWords(text, TopWordsLimit),
	}
	if words == 0 {
		return s
	}

	if sentences > 0 {
		s.AvgSentenceLength = round1(float64(words) / float64(sentences))
	}
	if paragraphs > 0 {
		s.AvgParagraphLen = round1(float64(words) / float64(paragraphs))
	}
	s.AvgWordLength = round1(float64(noSpace) / float64(words))
	s.WordDensity = round1(float64(words) / float64(chars) * 100)

	if sentences > 0 {
		score := Flesch(words, sentences, CountSyllables(text))
		s.Readability = &Readability{Score: round1(score), Level: Level(score)}
	}
	return s
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences counts non-blank segments between runs of '.', '!' or '?'
// that are followed by whitespace or the end of text.
func CountSentences(text string) int {
	return countNonBlank(sentenceEnd.Split(text, -1))
}

// CountParagraphs counts non-blank lines.
func CountParagraphs(text string) int {
	return countNonBlank(paragraphSep.Split(text, -1))
}

func countNonBlank(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// ReadingTime formats the time to read words at WordsPerMinute:
// "< 1 min", "N min", or "Hh Mm" for an hour or more.
func ReadingTime(words int) string {
	minutes := float64(words) / WordsPerMinute
	switch {
	case minutes < 1:
		return "< 1 min"
	case minutes < 60:
		return fmt.Sprintf("%d min", int(math.Ceil(minutes)))
	}
	hours := int(math.Floor(minutes / 60))
	mins := int(math.Ceil(math.Mod(minutes, 60)))
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// TopWords returns the limit most frequent words longer than two letters,
// lowercased with punctuation removed. Ties keep first-appearance order.
func TopWords(text string, limit int) []WordCount {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	out := make([]WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CountSyllables estimates the total syllables in text.
func CountSyllables(text string) int {
	total := 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		total += Syllables(w)
	}
	return total
}

// Syllables estimates the syllables in a single lowercase word. Words of up
// to three characters count as one; otherwise common silent endings and a
// leading 'y' are dropped and vowel groups counted, with a minimum of one.
func Syllables(word string) int {
	if utf8.RuneCountInString(word) <= 3 {
		return 1
	}
	word = silentSuffix.ReplaceAllString(word, "")
	word = leadingY.ReplaceAllString(word, "")
	if n := len(vowelGroup.FindAllString(word, -1)); n > 0 {
		return n
	}
	return 1
}

// Flesch computes the Flesch reading-ease score.
func Flesch(words, sentences, syllables int) float64 {
	return 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
}

// Level maps a Flesch score to its grade band.
func Level(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy (5th grade)"
	case score >= 80:
		return "Easy (6th grade)"
	case score >= 70:
		return "Fairly Easy (7th grade)"
	case score >= 60:
		return "Standard (8th-9th grade)"
	case score >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case score >= 30:
		return "Difficult (College)"
	}
	return "Very Difficult (Graduate)"
}

// Tidy collapses whitespace and starts a new paragraph after each sentence
// that is followed by a capital letter.
func Tidy(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = sentenceBreak.ReplaceAllString(text, "$1\n\n$2")
	return strings.TrimSpace(text)
}

// Preview truncates text to n runes, appending "..." when shortened.
func Preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
