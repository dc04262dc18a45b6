// Package highlight splits display text into segments that do or do not
// match a raw user query, for emphasis by a rendering layer.
package highlight

import (
	"regexp"
	"strings"
)

// Segment is a contiguous run of the subject text.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Highlight marks every case-insensitive occurrence of query in text.
//
// The query is matched literally: pattern metacharacters are escaped.
// Concatenating the returned segments always reproduces text. An empty
// query, or any internal failure, yields text as a single unmatched
// segment.
func Highlight(text, query string) (segments []Segment) {
	whole := []Segment{{Text: text}}
	if query == "" || text == "" {
		return whole
	}

	defer func() {
		if r := recover(); r != nil {
			segments = whole
		}
	}()

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return whole
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return whole
	}

	segments = make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Matched: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	if len(segments) == 0 {
		return whole
	}
	return segments
}

// Render joins segments, wrapping matched ones in open and close markers.
func Render(segments []Segment, open, close string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched {
			b.WriteString(open)
			b.WriteString(s.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
