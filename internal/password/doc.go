// Package password generates random passwords and passphrases and scores
// password strength.
//
// Randomness comes from crypto/rand unless a Generator is created with a
// different source. A password is built from the enabled character classes,
// or from a pattern in which each letter stands for a class:
//
//	C  uppercase         c  lowercase
//	V  uppercase vowel   v  lowercase vowel
//	A  any letter        a  lowercase letter
//	#  digit             !  symbol
//	x  letter or digit   *  any class
//
// Any other pattern character is copied literally. Letter and digit classes
// used by a pattern never contain look-alike characters (il1Lo0O), symbol
// classes never contain ambiguous punctuation.
package password
