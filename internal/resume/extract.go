// Package resume extracts contact fields from already-parsed resume text.
// File parsing (PDF/DOCX) is the upload collaborator's job; this package
// only sees plain text.
package resume

import (
	"fmt"
	"regexp"
	"strings"
)

// Profile holds whatever contact data could be recovered from the text.
// Missing fields stay empty; the caller decides whether to prompt for them.
type Profile struct {
	Name  string
	Email string
	Phone string
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Name patterns, tried in order of reliability.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][a-zA-Z]+ [A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?)`),
		regexp.MustCompile(`(?i)(?:Name|Full Name):\s*([A-Z][a-zA-Z]+ [A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?)`),
		regexp.MustCompile(`\b([A-Z][a-zA-Z]{1,15} [A-Z][a-zA-Z]{1,15}(?: [A-Z][a-zA-Z]{1,15})?)\b`),
	}

	emailPattern = regexp.MustCompile(`([a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9][a-zA-Z0-9.-]*\.[a-zA-Z]{2,})`)

	// Phone formats: (123) 456-7890, 123-456-7890, 123.456.7890,
	// 123 456 7890, +1 variants, bare 10 digits.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\((\d{3})\)\s*(\d{3})-?(\d{4})`),
		regexp.MustCompile(`(\d{3})-(\d{3})-(\d{4})`),
		regexp.MustCompile(`(\d{3})\.(\d{3})\.(\d{4})`),
		regexp.MustCompile(`(\d{3}) (\d{3}) (\d{4})`),
		regexp.MustCompile(`\+?1\s*(\d{3})\s*(\d{3})\s*(\d{4})`),
		regexp.MustCompile(`(\d{10})`),
	}
)

// Extract pulls name, email, and phone from resume text.
func Extract(content string) Profile {
	clean := strings.TrimSpace(whitespacePattern.ReplaceAllString(content, " "))

	var p Profile
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(clean); m != nil {
			p.Name = strings.TrimSpace(m[1])
			break
		}
	}

	if m := emailPattern.FindStringSubmatch(clean); m != nil {
		p.Email = strings.ToLower(m[1])
	}

	for _, pattern := range phonePatterns {
		m := pattern.FindString(clean)
		if m == "" {
			continue
		}
		digits := keepDigits(m)
		if len(digits) == 11 && strings.HasPrefix(digits, "1") {
			digits = digits[1:]
		}
		if len(digits) == 10 {
			p.Phone = fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
			break
		}
	}

	return p
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
