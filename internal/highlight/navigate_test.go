package highlight

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRegion struct {
	layout  Layout
	height  int
	scrolls []int
}

func (f *fakeRegion) MatchLine(ordinal int) (int, bool) { return f.layout.MatchLine(ordinal) }
func (f *fakeRegion) Height() int                       { return f.height }
func (f *fakeRegion) ScrollTo(offset int)               { f.scrolls = append(f.scrolls, offset) }

func TestFocusFirstMatch_NoMatchIsNoop(t *testing.T) {
	tree := mustParse(t, `{"a": {"b": "c"}}`)
	region := &fakeRegion{layout: Render(tree, "zzz").Layout(), height: 10}

	assert.False(t, FocusFirstMatch(region))
	assert.Empty(t, region.scrolls)

	region = &fakeRegion{layout: Render(tree, "").Layout(), height: 10}
	assert.False(t, FocusFirstMatch(region))
	assert.Empty(t, region.scrolls)

	assert.False(t, FocusFirstMatch(nil))
}

func TestFocusFirstMatch_PicksCanonicalFirstAndCenters(t *testing.T) {
	rows := make([]string, 0, 30)
	for i := range 30 {
		rows = append(rows, fmt.Sprintf("%q: \"x\"", fmt.Sprintf("row%02d", i)))
	}
	payload := "{" + strings.Join(rows, ",") + `, "target": {"hit": "v"}, "later": {"hit again": "v"}}`

	tree := mustParse(t, payload)
	layout := Render(tree, "hit").Layout()
	region := &fakeRegion{layout: layout, height: 10}

	assert.True(t, FocusFirstMatch(region))
	// rows 0..29, "target" at 30, "hit" at 31
	assert.Equal(t, []int{31 - 5}, region.scrolls)
}

func TestFocusFirstMatch_KeyBeforeValue(t *testing.T) {
	// Ordinal 0 is the value of the first entry, not the later matching key.
	tree := mustParse(t, `{"plain": "mug", "mug": "plain"}`)
	region := &fakeRegion{layout: Render(tree, "mug").Layout(), height: 2}

	assert.True(t, FocusFirstMatch(region))
	assert.Equal(t, []int{0}, region.scrolls)
}

func TestFocusFirstMatch_Idempotent(t *testing.T) {
	tree := mustParse(t, `{"a": "1", "b": "2", "c": "3", "d": {"mug": "4"}}`)
	region := &fakeRegion{layout: Render(tree, "mug").Layout(), height: 2}

	FocusFirstMatch(region)
	FocusFirstMatch(region)
	assert.Equal(t, []int{3, 3}, region.scrolls)
}

func TestCenterOffset(t *testing.T) {
	assert.Equal(t, 0, CenterOffset(3, 20))
	assert.Equal(t, 40, CenterOffset(50, 20))
	assert.Equal(t, 50, CenterOffset(50, 0))
}

func TestScrollSteps(t *testing.T) {
	assert.Nil(t, ScrollSteps(5, 5, 8))

	steps := ScrollSteps(0, 40, 8)
	assert.NotEmpty(t, steps)
	assert.LessOrEqual(t, len(steps), 8)
	assert.Equal(t, 40, steps[len(steps)-1])
	for i := 1; i < len(steps); i++ {
		assert.Greater(t, steps[i], steps[i-1])
	}

	back := ScrollSteps(40, 3, 6)
	assert.Equal(t, 3, back[len(back)-1])
	for i := 1; i < len(back); i++ {
		assert.Less(t, back[i], back[i-1])
	}

	assert.Equal(t, []int{1}, ScrollSteps(0, 1, 8))
	assert.Equal(t, []int{9}, ScrollSteps(0, 9, 0))
}
