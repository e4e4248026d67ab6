package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reKey   = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

	// Shelf code formats: standard racks, humidity/temperature controlled
	// cabinets, vault, inspection desks, photo and packing rooms, plus the
	// short A-01 style used on the floor.
	reLocations = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z]-\d{2}$`),
		regexp.MustCompile(`^STD-[A-Z]-\d{2}$`),
		regexp.MustCompile(`^HUM-\d{2}$`),
		regexp.MustCompile(`^TEMP-\d{2}$`),
		regexp.MustCompile(`^VAULT-\d{2}$`),
		regexp.MustCompile(`^INSP-[A-Z]$`),
		regexp.MustCompile(`^PHOTO$`),
		regexp.MustCompile(`^PACK$`),
	}
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/plan/notification ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// StatusKey validates a registry key: lowercase snake, short.
func StatusKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reKey.MatchString(s)
}

// LocationCode validates a shelf code against the curated pattern set.
func LocationCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || len(s) > 12 {
		return "", false
	}
	for _, re := range reLocations {
		if re.MatchString(s) {
			return s, true
		}
	}
	return s, false
}

// LabelFileName rejects traversal characters before any filesystem access.
func LabelFileName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 128 {
		return "", false
	}
	if strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) || strings.Contains(s, "\x00") {
		return "", false
	}
	return s, strings.HasSuffix(strings.ToLower(s), ".pdf")
}

// Page clamps pagination input to sane bounds.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

// Password enforces the login complexity window.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
