package dateutil

import (
	"fmt"
	"strings"
	"time"
)

type parsed struct {
	year, month, day     int
	hour, minute, second int
	nanos                int
	pm, hasAmPm, hour12  bool
	offsetSeconds        int
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Parse reads value written with pattern and returns the UTC instant.
// Fields missing from the pattern default to 2000-01-01T00:00:00.
func Parse(value, pattern string) (time.Time, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return time.Time{}, err
	}

	p := parsed{year: 2000, month: 1, day: 1}
	rest := value

	for i, tok := range tokens {
		if tok.letter == 0 {
			if !strings.HasPrefix(rest, tok.literal) {
				return time.Time{}, fmt.Errorf("parsing %q as %q: expected %q", value, pattern, tok.literal)
			}
			rest = rest[len(tok.literal):]
			continue
		}

		if tok.letter == 'y' && tok.count != 2 && rest != "" && (rest[0] == '+' || rest[0] == '-') {
			if rest, err = parseSignedYear(&p, rest, tok.count, numericWidthAfter(tokens[i+1:])); err != nil {
				return time.Time{}, fmt.Errorf("parsing %q as %q: %w", value, pattern, err)
			}
			continue
		}

		// adjacent numeric fields have no separator, so widths must be exact
		exact := tok.count > 1 || (i+1 < len(tokens) && tokens[i+1].letter != 0)
		if rest, err = parseField(&p, tok, rest, exact); err != nil {
			return time.Time{}, fmt.Errorf("parsing %q as %q: %w", value, pattern, err)
		}
	}

	if rest != "" {
		return time.Time{}, fmt.Errorf("parsing %q as %q: unexpected trailing text %q", value, pattern, rest)
	}

	hour := p.hour
	if p.hour12 {
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("parsing %q as %q: hour %d out of range", value, pattern, hour)
		}
		hour %= 12
		if p.hasAmPm && p.pm {
			hour += 12
		}
	} else if p.hasAmPm && p.pm && hour < 12 {
		hour += 12
	}

	t := time.Date(p.year, time.Month(p.month), p.day, hour, p.minute, p.second, p.nanos, time.UTC)
	if t.Year() != p.year || int(t.Month()) != p.month || t.Day() != p.day ||
		t.Hour() != hour || t.Minute() != p.minute || t.Second() != p.second {
		return time.Time{}, fmt.Errorf("parsing %q as %q: date out of range", value, pattern)
	}

	return t.Add(-time.Duration(p.offsetSeconds) * time.Second), nil
}

func readDigits(s string, minWidth, maxWidth int) (int, string, error) {
	n := 0
	for n < len(s) && n < maxWidth && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < minWidth {
		return 0, s, fmt.Errorf("expected %d digits at %q", minWidth, s)
	}
	v := 0
	for _, c := range s[:n] {
		v = v*10 + int(c-'0')
	}
	return v, s[n:], nil
}

func isNumericToken(tok token) bool {
	switch tok.letter {
	case 'y', 'd', 'H', 'h', 'm', 's', 'S':
		return true
	case 'M':
		return tok.count < 3
	}
	return false
}

// numericWidthAfter is the digit count taken by the numeric fields directly
// following a year, up to the first separator or named field.
func numericWidthAfter(tokens []token) int {
	width := 0
	for _, tok := range tokens {
		if tok.letter == 0 || !isNumericToken(tok) {
			break
		}
		width += tok.count
	}
	return width
}

// parseSignedYear reads "+NNNNN" or "-NNNN". The year takes every digit of
// the run except the reserved ones of the adjacent fields.
func parseSignedYear(p *parsed, s string, count, reserved int) (string, error) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	digits := s[1:]
	run := 0
	for run < len(digits) && digits[run] >= '0' && digits[run] <= '9' {
		run++
	}
	width := run - reserved
	if width < count || width < 1 {
		return s, fmt.Errorf("expected %d year digits at %q", count, s)
	}
	if width > 18 {
		return s, fmt.Errorf("year out of range at %q", s)
	}
	v, rest, err := readDigits(digits, width, width)
	if err != nil {
		return s, err
	}
	p.year = sign * v
	return rest, nil
}

func readName(s string, names []string, abbreviated bool) (int, string, error) {
	for i, name := range names {
		candidate := name
		if abbreviated {
			candidate = name[:3]
		}
		if len(s) >= len(candidate) && strings.EqualFold(s[:len(candidate)], candidate) {
			return i, s[len(candidate):], nil
		}
	}
	return 0, s, fmt.Errorf("unknown name at %q", s)
}

func parseNumber(s string, count int, exact bool, maxWidth int) (int, string, error) {
	if exact {
		return readDigits(s, count, count)
	}
	return readDigits(s, 1, maxWidth)
}

func parseField(p *parsed, tok token, s string, exact bool) (string, error) {
	var err error
	switch tok.letter {
	case 'y':
		var v int
		if tok.count == 2 {
			v, s, err = readDigits(s, 2, 2)
			v += 2000
		} else if exact {
			v, s, err = readDigits(s, tok.count, tok.count)
		} else {
			v, s, err = readDigits(s, 1, 9)
		}
		p.year = v
	case 'M':
		switch {
		case tok.count >= 3:
			var idx int
			idx, s, err = readName(s, monthNames, tok.count == 3)
			p.month = idx + 1
		default:
			p.month, s, err = parseNumber(s, tok.count, exact, 2)
		}
	case 'd':
		p.day, s, err = parseNumber(s, tok.count, exact, 2)
	case 'H':
		p.hour, s, err = parseNumber(s, tok.count, exact, 2)
	case 'h':
		p.hour, s, err = parseNumber(s, tok.count, exact, 2)
		p.hour12 = true
	case 'm':
		p.minute, s, err = parseNumber(s, tok.count, exact, 2)
	case 's':
		p.second, s, err = parseNumber(s, tok.count, exact, 2)
	case 'S':
		var v int
		v, s, err = readDigits(s, tok.count, tok.count)
		for digits := tok.count; digits < 9; digits++ {
			v *= 10
		}
		for digits := tok.count; digits > 9; digits-- {
			v /= 10
		}
		p.nanos = v
	case 'a':
		switch {
		case len(s) >= 2 && strings.EqualFold(s[:2], "AM"):
			p.hasAmPm = true
		case len(s) >= 2 && strings.EqualFold(s[:2], "PM"):
			p.hasAmPm, p.pm = true, true
		default:
			return s, fmt.Errorf("expected AM/PM at %q", s)
		}
		s = s[2:]
	case 'E':
		_, s, err = readName(s, weekdayNames, tok.count < 4)
	case 'X', 'Z':
		s, err = parseOffset(p, s)
	default:
		literal := strings.Repeat(string(tok.letter), tok.count)
		if !strings.HasPrefix(s, literal) {
			return s, fmt.Errorf("expected %q at %q", literal, s)
		}
		s = s[len(literal):]
	}
	return s, err
}

func parseOffset(p *parsed, s string) (string, error) {
	if strings.HasPrefix(s, "Z") {
		p.offsetSeconds = 0
		return s[1:], nil
	}
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return s, fmt.Errorf("expected zone offset at %q", s)
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	rest := s[1:]
	hours, rest, err := readDigits(rest, 2, 2)
	if err != nil {
		return s, err
	}
	rest = strings.TrimPrefix(rest, ":")
	minutes, rest, err := readDigits(rest, 2, 2)
	if err != nil {
		return s, err
	}
	p.offsetSeconds = sign * (hours*3600 + minutes*60)
	return rest, nil
}
