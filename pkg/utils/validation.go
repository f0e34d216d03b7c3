package utils

import "strings"

// ValidateDNI reports whether s is exactly 7 or 8 decimal digits, no
// separators. DNIs are stored and compared in this form only.
func ValidateDNI(s string) bool {
	if len(s) != 7 && len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateEmail checks a basic local@domain.tld shape: non-whitespace
// segments around one '@' and at least one '.' in the domain. A cheap sanity
// filter, nothing close to RFC 5322.
func ValidateEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, dom := s[:at], s[at+1:]
	if hasSpace(local) || hasSpace(dom) {
		return false
	}
	dot := strings.IndexByte(dom, '.')
	if dot <= 0 || dot == len(dom)-1 {
		return false
	}
	return true
}

func hasSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return true
		}
	}
	return false
}

// SanitizeString trims surrounding whitespace and drops every literal '<'
// and '>'. Guards display contexts against trivial markup injection; not an
// HTML sanitizer.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
}

// CleanDigits strips every non-digit character. Used to normalize raw DNI
// and telefono input before validation or storage.
func CleanDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatDNI inserts dot thousands separators for display. Never used for
// storage or comparison.
func FormatDNI(dni string) string {
	n := len(dni)
	if n <= 3 {
		return dni
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(dni[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(dni[i : i+3])
	}
	return b.String()
}
