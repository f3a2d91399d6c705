// Package textfmt transforms plain text: case and whitespace clean-up, line
// operations, URL and Base64 encoding, and email address extraction.
//
// Every function is pure; callers that keep history wrap them (see package
// tools).
package textfmt
