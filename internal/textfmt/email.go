package textfmt

import (
	"net/mail"
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	emailShape   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// EmailOptions controls ExtractEmails post-processing.
type EmailOptions struct {
	Dedupe   bool // keep the first occurrence of each address
	Validate bool // drop addresses that do not parse as RFC 5322 addr-spec
	Sort     bool // order case-insensitively
}

// EmailExtraction is the outcome of ExtractEmails.
type EmailExtraction struct {
	Emails            []string       `json:"emails"`
	Count             int            `json:"count"`
	TotalFound        int            `json:"total_found"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	InvalidRemoved    int            `json:"invalid_removed"`
	Domains           map[string]int `json:"domains"`
}

// ExtractEmails finds the email addresses in text. Without options every
// match is returned in order of appearance.
func ExtractEmails(text string, opts EmailOptions) *EmailExtraction {
	found := emailPattern.FindAllString(text, -1)
	out := &EmailExtraction{TotalFound: len(found), Domains: map[string]int{}}

	emails := found
	if opts.Dedupe {
		seen := make(map[string]bool, len(found))
		emails = emails[:0:0]
		for _, e := range found {
			key := strings.ToLower(e)
			if seen[key] {
				continue
			}
			seen[key] = true
			emails = append(emails, e)
		}
		out.DuplicatesRemoved = len(found) - len(emails)
	}

	if opts.Validate {
		valid := emails[:0:0]
		for _, e := range emails {
			if ValidEmail(e) {
				valid = append(valid, e)
			}
		}
		out.InvalidRemoved = len(emails) - len(valid)
		emails = valid
	}

	if opts.Sort {
		sort.SliceStable(emails, func(i, j int) bool {
			return strings.ToLower(emails[i]) < strings.ToLower(emails[j])
		})
	}

	if emails == nil {
		emails = []string{}
	}
	for _, e := range emails {
		out.Domains[strings.ToLower(e[strings.LastIndexByte(e, '@')+1:])]++
	}
	out.Emails = emails
	out.Count = len(emails)
	return out
}

// ValidEmail reports whether s is a bare address: one '@', a dotted domain
// and an addr-spec net/mail accepts without a display name.
func ValidEmail(s string) bool {
	if !emailShape.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}
