package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lit(s string) Segment { return Segment{Kind: Literal, Text: s} }
func hit(s string) Segment { return Segment{Kind: Match, Text: s} }

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Segment
	}{
		{"empty query", "Blue Shirt", "", []Segment{lit("Blue Shirt")}},
		{"whitespace query", "Blue Shirt", "   ", []Segment{lit("Blue Shirt")}},
		{"case insensitive", "Blue Shirt", "shirt", []Segment{lit("Blue "), hit("Shirt")}},
		{"adjacent matches", "aaa", "a", []Segment{hit("a"), hit("a"), hit("a")}},
		{"non overlapping", "aaaa", "aa", []Segment{hit("aa"), hit("aa")}},
		{"pattern characters", "Item (Sale)", "(Sale)", []Segment{lit("Item "), hit("(Sale)")}},
		{"star and dot", "a*b.c", "*b.", []Segment{lit("a"), hit("*b."), lit("c")}},
		{"dot is literal", "abc", ".", []Segment{lit("abc")}},
		{"inside word", "Banana", "an", []Segment{lit("B"), hit("an"), hit("an"), lit("a")}},
		{"no match", "Blue Shirt", "mug", []Segment{lit("Blue Shirt")}},
		{"query longer than text", "ab", "abc", []Segment{lit("ab")}},
		{"empty text", "", "abc", []Segment{lit("")}},
		{"leading space kept", "Blue Shirt", " shirt", []Segment{lit("Blue"), hit(" Shirt")}},
		{"middle", "RED LUNCH BAG", "lunch", []Segment{lit("RED "), hit("LUNCH"), lit(" BAG")}},
		{"invalid utf8 query", "ab\xffcd", "\xff", []Segment{lit("ab"), hit("\xff"), lit("cd")}},
		{"invalid utf8 query repeated", "\xfe\xfex\xfe", "\xfe", []Segment{hit("\xfe"), hit("\xfe"), lit("x"), hit("\xfe")}},
		{"invalid utf8 query no hit", "plain", "a\xff", []Segment{lit("plain")}},
		{"invalid utf8 text", "ab\xffcd", "CD", []Segment{lit("ab\xff"), hit("cd")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.query)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, Join(got))
		})
	}
}

func TestSplit_ReconstructsInput(t *testing.T) {
	texts := []string{"", "x", "WHITE HANGING HEART T-LIGHT HOLDER", "ÄÖÜ äöü", "12.5%", "a\nb", "[]{}()^$|?+\\"}
	queries := []string{"", " ", "h", "HEART", "ö", "%", "\\", "()", "$", "a\nb", "zzz"}
	for _, text := range texts {
		for _, q := range queries {
			got := Split(text, q)
			if Join(got) != text {
				t.Fatalf("Split(%q, %q) joined = %q, want %q", text, q, Join(got), text)
			}
			for _, seg := range got {
				if seg.Text == "" && len(got) > 1 {
					t.Fatalf("Split(%q, %q) produced an empty segment: %#v", text, q, got)
				}
			}
		}
	}
}

func TestMatcher_Active(t *testing.T) {
	assert.False(t, NewMatcher("").Active())
	assert.False(t, NewMatcher("\t ").Active())
	m := NewMatcher("mug")
	assert.True(t, m.Active())
	assert.Equal(t, "mug", m.Query())
	assert.True(t, NewMatcher("\xff").Active())

	var zero Matcher
	assert.Equal(t, []Segment{lit("text")}, zero.Split("text"))
}

func TestCountMatches(t *testing.T) {
	assert.Equal(t, 3, CountMatches(Split("aaa", "a")))
	assert.Equal(t, 0, CountMatches(Split("aaa", "")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "literal", Literal.String())
	assert.Equal(t, "match", Match.String())
}
