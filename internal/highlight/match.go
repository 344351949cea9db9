package highlight

import (
	"regexp"
	"strings"
)

// Kind distinguishes plain text from search hits.
type Kind int

const (
	Literal Kind = iota
	Match
)

func (k Kind) String() string {
	if k == Match {
		return "match"
	}
	return "literal"
}

// Segment is a run of text produced by splitting a string at search hits.
type Segment struct {
	Kind Kind
	Text string
}

// Matcher splits strings at case-insensitive occurrences of one query.
// The zero value matches nothing.
type Matcher struct {
	query string
	re    *regexp.Regexp
	// raw is set instead of re when the query is not valid UTF-8; such
	// queries match byte for byte.
	raw bool
}

// NewMatcher prepares a matcher for query. The query is always treated as a
// literal substring; blank queries produce a matcher that never matches.
func NewMatcher(query string) Matcher {
	if strings.TrimSpace(query) == "" {
		return Matcher{}
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return Matcher{query: query, raw: true}
	}
	return Matcher{query: query, re: re}
}

// Active reports whether the matcher has a non-blank query.
func (m Matcher) Active() bool {
	return m.re != nil || m.raw
}

// Query returns the query the matcher was built from.
func (m Matcher) Query() string {
	return m.query
}

// Split cuts text into literal and match segments. Adjacent matches are not
// separated by empty literals, and the segment texts always concatenate back
// to text.
func (m Matcher) Split(text string) []Segment {
	if !m.Active() {
		return []Segment{{Kind: Literal, Text: text}}
	}
	locs := m.find(text)
	if len(locs) == 0 {
		return []Segment{{Kind: Literal, Text: text}}
	}

	segs := make([]Segment, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			segs = append(segs, Segment{Kind: Literal, Text: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Kind: Match, Text: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Kind: Literal, Text: text[last:]})
	}
	return segs
}

// find returns the [start, end) byte offsets of every non-overlapping hit.
func (m Matcher) find(text string) [][]int {
	if m.re != nil {
		return m.re.FindAllStringIndex(text, -1)
	}
	var locs [][]int
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], m.query)
		if i < 0 {
			break
		}
		start := off + i
		locs = append(locs, []int{start, start + len(m.query)})
		off = start + len(m.query)
	}
	return locs
}

// Split is a convenience for NewMatcher(query).Split(text).
func Split(text, query string) []Segment {
	return NewMatcher(query).Split(text)
}

// Join concatenates segment texts.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// CountMatches returns the number of match segments.
func CountMatches(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if s.Kind == Match {
			n++
		}
	}
	return n
}
