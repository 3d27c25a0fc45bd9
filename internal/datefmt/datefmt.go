package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type component uint8

const (
	componentDay component = 1 << iota
	componentMonth
	componentYear
)

type token struct {
	text      string
	layout    string
	component component
	named     bool
}

// Ordered longest first so MMMM wins over MM and DD over D.
var tokens = []token{
	{text: "YYYY", layout: "2006", component: componentYear},
	{text: "YY", layout: "06", component: componentYear},
	{text: "MMMM", layout: "January", component: componentMonth, named: true},
	{text: "MMM", layout: "Jan", component: componentMonth, named: true},
	{text: "MM", layout: "01", component: componentMonth},
	{text: "M", layout: "1", component: componentMonth},
	{text: "DD", layout: "02", component: componentDay},
	{text: "D", layout: "2", component: componentDay},
}

// Format is a compiled filename date pattern.
type Format struct {
	pattern    string
	layout     string
	components component
	named      bool
}

// Compile translates a token pattern such as "DD-MM-YY" into a reusable
// Format. Recognized tokens: DD and D for the day, MM, M, MMM, and MMMM for
// the month, YY and YYYY for the year. Punctuation and spaces pass through
// as literals; any other letter or digit sequence is an error.
func Compile(pattern string) (*Format, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return nil, errors.New("empty pattern")
	}
	var layout strings.Builder
	var components component
	named := false
	i := 0
	for i < len(trimmed) {
		if tok, ok := matchToken(trimmed[i:]); ok {
			layout.WriteString(tok.layout)
			components |= tok.component
			if tok.named {
				named = true
			}
			i += len(tok.text)
			continue
		}
		r, size := utf8.DecodeRuneInString(trimmed[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			end := i + size
			for end < len(trimmed) {
				next, nextSize := utf8.DecodeRuneInString(trimmed[end:])
				if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
					break
				}
				end += nextSize
			}
			return nil, fmt.Errorf("unrecognized token %q in pattern %q", trimmed[i:end], trimmed)
		}
		layout.WriteRune(r)
		i += size
	}
	if components == 0 {
		return nil, fmt.Errorf("pattern %q contains no date tokens", trimmed)
	}
	return &Format{
		pattern:    trimmed,
		layout:     layout.String(),
		components: components,
		named:      named,
	}, nil
}

func matchToken(s string) (token, bool) {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok.text) {
			return tok, true
		}
	}
	return token{}, false
}

// Parse strictly interprets value as a date in this format. The parsed date
// must render back to the exact input text, which rejects the unpadded and
// partial matches that time.Parse alone lets through. Month names compare
// case-insensitively. The returned time is midnight UTC.
func (f *Format) Parse(value string) (time.Time, bool) {
	candidate := value
	if f.named {
		candidate = cases.Title(language.Und).String(candidate)
	}
	parsed, err := time.Parse(f.layout, candidate)
	if err != nil {
		return time.Time{}, false
	}
	if parsed.Format(f.layout) != candidate {
		return time.Time{}, false
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
}

// Format renders t according to the pattern.
func (f *Format) Format(t time.Time) string {
	return t.Format(f.layout)
}

// Complete reports whether the pattern names a day, a month, and a year, which
// a filename format needs in order to pin a calendar date.
func (f *Format) Complete() bool {
	const full = componentDay | componentMonth | componentYear
	return f.components&full == full
}

// String returns the original pattern text.
func (f *Format) String() string {
	return f.pattern
}
