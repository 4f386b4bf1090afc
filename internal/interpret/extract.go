package interpret

import "regexp"

var nonGreedyObject = regexp.MustCompile(`(?s)\{.*?\}`)

// Extract returns the first JSON-looking object embedded in raw.
//
// It scans once from the first '{' to the brace that balances it, ignoring
// braces inside string literals. When the braces never balance (a truncated
// response) it falls back to the first non-greedy {...} match.
func Extract(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}

	if start < 0 {
		return "", false
	}
	if m := nonGreedyObject.FindString(raw[start:]); m != "" {
		return m, true
	}
	return "", false
}
