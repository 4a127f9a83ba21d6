package telemetry

import (
	"regexp"
	"strings"
	"unicode"
)

const unknownName = "Unknown"

var formatCharsRegex = regexp.MustCompile(`\p{Cf}`)

// NormalizeName trims a display name, strips control and format characters and
// collapses inner whitespace runs to a single space.
func NormalizeName(name string) string {
	name = formatCharsRegex.ReplaceAllString(name, "")

	var result strings.Builder
	prevSpace := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		} else {
			result.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

func displayName(obj map[string]any) string {
	name := NormalizeName(lookupString(obj, nameFields))
	if name == "" {
		return unknownName
	}
	// riotId carries "name#tag"
	if idx := strings.LastIndex(name, "#"); idx > 0 {
		return name[:idx]
	}
	return name
}

func tagLine(obj map[string]any) *string {
	tag := NormalizeName(lookupString(obj, tagFields))
	if tag == "" {
		if riotID := lookupString(obj, []string{"riotId"}); riotID != "" {
			if idx := strings.LastIndex(riotID, "#"); idx > 0 && idx < len(riotID)-1 {
				tag = riotID[idx+1:]
			}
		}
	}
	if tag == "" {
		return nil
	}
	return &tag
}
