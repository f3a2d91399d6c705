// Package textstats computes word, sentence and paragraph counts, word
// frequencies, reading time and a Flesch reading-ease estimate for plain text.
//
// Syllables are estimated with a vowel-group heuristic, so scores are
// approximate and intended for relative comparison.
package textstats
