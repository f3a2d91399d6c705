package password

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// MaxScore is the highest strength score.
const MaxScore = 8

// Strength is a password's score out of MaxScore and its label.
type Strength struct {
	Score   int    `json:"score"`
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// Score rates password: one point per length threshold reached (8, 12, 16
// and 20 runes), one per character class present (lowercase, uppercase,
// digit, other) and one for having no character repeated three times in a
// row.
func Score(password string) Strength {
	score := 0
	n := utf8.RuneCountInString(password)
	for _, threshold := range []int{8, 12, 16, 20} {
		if n >= threshold {
			score++
		}
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, present := range []bool{lower, upper, digit, other} {
		if present {
			score++
		}
	}
	if n > 0 && !hasTriple(password) {
		score++
	}
	if score > MaxScore {
		score = MaxScore
	}

	return Strength{
		Score:   score,
		Percent: int(math.Round(float64(score) / MaxScore * 100)),
		Label:   label(score),
	}
}

func label(score int) string {
	switch {
	case score <= 2:
		return "Very Weak"
	case score <= 4:
		return "Weak"
	case score <= 6:
		return "Good"
	}
	return "Strong"
}

// hasTriple reports whether some rune occurs three or more times in a row.
func hasTriple(s string) bool {
	var prev rune = unicode.MaxRune + 1
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}
