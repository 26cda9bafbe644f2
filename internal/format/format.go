package format

import (
	"fmt"
	"strings"
	"time"
)

var slMonths = [...]string{
	"januar", "februar", "marec", "april", "maj", "junij",
	"julij", "avgust", "september", "oktober", "november", "december",
}

// FmtDate formats t in a locale-friendly long form.
// Example: FmtDate(t, "sl") => "18. oktober 2026"
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "sl":
		return fmt.Sprintf("%d. %s %d", t.Day(), slMonths[t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}

// Plural picks the Slovenian grammatical number form for n: one, two, few
// (3 and 4) or other. English only uses one and other.
func Plural(n int, lang, one, two, few, other string) string {
	if strings.ToLower(lang) != "sl" {
		if n == 1 {
			return one
		}
		return other
	}
	switch n % 100 {
	case 1:
		return one
	case 2:
		return two
	case 3, 4:
		return few
	default:
		return other
	}
}
