package utils

import (
	"regexp"
	"strings"
	"time"

	"cbs/src/config"

	"github.com/gosimple/slug"
)

const MaxMessageLength = 2000

var blockedWords = []string{"spam", "hack", "phish"}

// SanitizeBody strips whitespace, masks blocked words and caps the body at
// MaxMessageLength runes.
func SanitizeBody(text string) string {
	clean := strings.TrimSpace(text)
	for _, word := range blockedWords {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
		clean = pattern.ReplaceAllString(clean, "***")
	}
	runes := []rune(clean)
	if len(runes) > MaxMessageLength {
		clean = string(runes[:MaxMessageLength])
	}
	return clean
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func MakeSlug(title string) string {
	return slug.Make(title)
}

// ClampInt constrains v to [minv, maxv], returning def when v is zero.
func ClampInt(v, def, minv, maxv int) int {
	if v == 0 {
		v = def
	}
	if v < minv {
		return minv
	}
	if v > maxv {
		return maxv
	}
	return v
}

func ParseBookingTime(value string) (time.Time, error) {
	return time.Parse(config.TIME_PARSE_FORMAT, value)
}
