// ticker/ticker.go - Ticker derivation for team names
//
// A ticker is the short, URL-safe public identifier of a team, analogous to a
// stock symbol. Generation is deterministic and pure; uniqueness is NOT
// guaranteed here and must be enforced by the caller against persisted state.
package ticker

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// knownNames maps well-known Korean act names to their established roman
// short codes. Checked before any derivation rule.
var knownNames = map[string]string{
	"세븐틴":  "svt",
	"아이즈원": "izone",
}

var asciiName = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Generate derives a ticker from a display name.
//
// Empty names yield an empty ticker, which callers must treat as invalid.
// Known names use the lookup table. ASCII names are slugified
// ("New Jeans" -> "new-jeans"). Anything else falls back to stripping every
// rune outside [a-z0-9] and the Hangul syllable block, truncated to 10 runes;
// that fallback makes no promise of uniqueness or reversibility.
func Generate(name string) string {
	if name == "" {
		return ""
	}

	if code, ok := knownNames[name]; ok {
		return strings.ToLower(code)
	}

	if asciiName.MatchString(name) {
		return slug.Make(name)
	}

	lowered := strings.ToLower(name)
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || (r >= '가' && r <= '힣') {
			b.WriteRune(r)
		}
	}

	runes := []rune(b.String())
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return string(runes)
}
