// Package dateutil formats and parses timestamps with the Unicode (LDML)
// patterns the mobile clients use, e.g. "yyyy-MM-dd'T'HH:mm:ss".
//
// Output never depends on the host: every value is converted to UTC and
// rendered with the proleptic Gregorian calendar and English month/day names.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ISOLocalPattern is the event-date format stored with every condition.
	ISOLocalPattern    = "yyyy-MM-dd'T'HH:mm:ss"
	DisplayDatePattern = "MMM d, yyyy"
	DisplayTimePattern = "HH:mm"
	GraphPattern       = "yyyy-MM-dd'T'HH:mm"
	DayPattern         = "yyyy-MM-dd"
)

var now = time.Now

// FormatDate renders t in UTC using pattern. An empty pattern means
// DisplayDatePattern. Unknown pattern letters are emitted verbatim.
func FormatDate(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DisplayDatePattern
	}
	return format(t, pattern)
}

// FormatTime is FormatDate with DisplayTimePattern as the default.
func FormatTime(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DisplayTimePattern
	}
	return format(t, pattern)
}

// CurrentTimestamp is the submission instant in ISO-8601 UTC, second precision.
func CurrentTimestamp() string {
	return Timestamp(now())
}

// Timestamp renders t the way CurrentTimestamp does.
func Timestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// ParseTimestamp accepts what Timestamp produces, plus any RFC 3339 offset.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

func format(t time.Time, pattern string) string {
	tokens, err := tokenize(pattern)
	if err != nil {
		// unbalanced quote: treat the whole pattern as text
		return pattern
	}

	t = t.UTC()
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.literal != "" || tok.letter == 0 {
			sb.WriteString(tok.literal)
			continue
		}
		sb.WriteString(formatField(t, tok.letter, tok.count))
	}
	return sb.String()
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// formatYear writes years outside 0..9999, or wider than the field, with an
// explicit sign so Parse can tell how many digits belong to the year.
func formatYear(year, count int) string {
	if year < 0 {
		return "-" + pad(-year, count)
	}
	s := pad(year, count)
	if year > 9999 || (count > 1 && len(s) > count) {
		return "+" + s
	}
	return s
}

func formatField(t time.Time, letter rune, count int) string {
	switch letter {
	case 'y':
		if count == 2 {
			return pad((t.Year()%100+100)%100, 2)
		}
		return formatYear(t.Year(), count)
	case 'M':
		switch {
		case count >= 4:
			return t.Month().String()
		case count == 3:
			return t.Month().String()[:3]
		default:
			return pad(int(t.Month()), count)
		}
	case 'd':
		return pad(t.Day(), count)
	case 'H':
		return pad(t.Hour(), count)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, count)
	case 'm':
		return pad(t.Minute(), count)
	case 's':
		return pad(t.Second(), count)
	case 'S':
		frac := pad(t.Nanosecond(), 9)
		if count <= 9 {
			return frac[:count]
		}
		return frac + strings.Repeat("0", count-9)
	case 'a':
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case 'E':
		if count >= 4 {
			return t.Weekday().String()
		}
		return t.Weekday().String()[:3]
	case 'X':
		return "Z"
	case 'Z':
		return "+0000"
	}
	return strings.Repeat(string(letter), count)
}

type token struct {
	letter  rune
	count   int
	literal string
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func tokenize(pattern string) ([]token, error) {
	var tokens []token
	runes := []rune(pattern)

	appendLiteral := func(s string) {
		if n := len(tokens); n > 0 && tokens[n-1].letter == 0 {
			tokens[n-1].literal += s
			return
		}
		tokens = append(tokens, token{literal: s})
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				appendLiteral("'")
				i += 2
				continue
			}
			var sb strings.Builder
			j := i + 1
			closed := false
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						sb.WriteRune('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				sb.WriteRune(runes[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quote in pattern %q", pattern)
			}
			appendLiteral(sb.String())
			i = j + 1
		case isPatternLetter(r):
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			tokens = append(tokens, token{letter: r, count: j - i})
			i = j
		default:
			appendLiteral(string(r))
			i++
		}
	}
	return tokens, nil
}
