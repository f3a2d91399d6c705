package textstats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "The cat sat on the mat. The dog ran fast!\n\nIt was a sunny day. Everyone played outside"

func TestAnalyze_Sample(t *testing.T) {
	s := Analyze(sample)

	assert.Equal(t, 18, s.Words)
	assert.Equal(t, 86, s.Characters)
	assert.Equal(t, 68, s.CharactersNoSpace)
	assert.Equal(t, 4, s.Sentences)
	assert.Equal(t, 2, s.Paragraphs)
	assert.Equal(t, "< 1 min", s.ReadingTime)
	assert.Equal(t, 4.5, s.AvgSentenceLength)
	assert.Equal(t, 9.0, s.AvgParagraphLen)
	assert.Equal(t, 3.8, s.AvgWordLength)
	assert.Equal(t, 20.9, s.WordDensity)

	require.NotNil(t, s.Readability)
	assert.Equal(t, 98.9, s.Readability.Score)
	assert.Equal(t, "Very Easy (5th grade)", s.Readability.Level)

	require.Len(t, s.TopWords, TopWordsLimit)
	assert.Equal(t, WordCount{"the", 3}, s.TopWords[0])
	assert.Equal(t, WordCount{"cat", 1}, s.TopWords[1])
	assert.Equal(t, WordCount{"day", 1}, s.TopWords[9])
}

func TestAnalyze_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		s := Analyze(text)
		assert.Zero(t, s.Words)
		assert.Zero(t, s.Sentences)
		assert.Zero(t, s.Paragraphs)
		assert.Zero(t, s.AvgWordLength)
		assert.Empty(t, s.TopWords)
		assert.Nil(t, s.Readability)
		assert.Equal(t, "< 1 min", s.ReadingTime)
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"One. Two! Three?", 3},
		{"No terminator", 1},
		{"Wait... what?! Really.", 3},
		{"Version 1.5 is out.", 1},
		{"...", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountSentences(tt.text), tt.text)
	}
}

func TestCountParagraphs(t *testing.T) {
	assert.Equal(t, 3, CountParagraphs("a\nb\n\n\nc"))
	assert.Equal(t, 1, CountParagraphs("\n\nonly\n"))
	assert.Equal(t, 1, CountParagraphs("line one\n   \n"))
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"the", 1},
		{"hello", 2},
		{"beautiful", 4},
		{"cake", 1},
		{"played", 1},
		{"yellow", 2},
		{"rhythm", 1},
		{"wishes", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Syllables(tt.word), tt.word)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{120, "Very Easy (5th grade)"},
		{90, "Very Easy (5th grade)"},
		{89.9, "Easy (6th grade)"},
		{80, "Easy (6th grade)"},
		{70, "Fairly Easy (7th grade)"},
		{60, "Standard (8th-9th grade)"},
		{50, "Fairly Difficult (10th-12th grade)"},
		{30, "Difficult (College)"},
		{29.9, "Very Difficult (Graduate)"},
		{-15, "Very Difficult (Graduate)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.score), "score %v", tt.score)
	}
}

func TestFlesch(t *testing.T) {
	assert.InDelta(t, 206.835-1.015*4.5-84.6*(22.0/18.0), Flesch(18, 4, 22), 1e-9)
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "< 1 min"},
		{199, "< 1 min"},
		{200, "1 min"},
		{201, "2 min"},
		{11999, "60 min"},
		{12000, "1h 0m"},
		{12100, "1h 1m"},
		{30000, "2h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadingTime(tt.words), "%d words", tt.words)
	}
}

func TestTopWords(t *testing.T) {
	got := TopWords("Go, go GO! is fun; fun is go.", 2)
	assert.Equal(t, []WordCount{{"fun", 2}}, got)

	many := strings.Repeat("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda ", 2)
	assert.Len(t, TopWords(many, TopWordsLimit), TopWordsLimit)
}

func TestTidy(t *testing.T) {
	assert.Equal(t, "hello world.\n\nNext one!\n\nYes", Tidy("  hello   world.  Next one!Yes  "))
	assert.Equal(t, "lower. case", Tidy("lower.   case"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	assert.Equal(t, "abc", Preview("abc", 3))
	assert.Equal(t, "héé...", Preview("hééllo", 3))
}
