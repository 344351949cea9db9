package highlight

// Region is a scrollable display of one rendered tree.
type Region interface {
	// MatchLine returns the row of the given match ordinal.
	MatchLine(ordinal int) (int, bool)
	// Height is the number of visible rows.
	Height() int
	// ScrollTo requests the first visible row become offset.
	ScrollTo(offset int)
}

// FocusFirstMatch scrolls region so the first match is vertically centered.
// It reports whether a match existed; without one nothing happens.
func FocusFirstMatch(region Region) bool {
	return FocusMatch(region, 0)
}

// FocusMatch centers the match with the given ordinal.
func FocusMatch(region Region, ordinal int) bool {
	if region == nil {
		return false
	}
	line, ok := region.MatchLine(ordinal)
	if !ok {
		return false
	}
	region.ScrollTo(CenterOffset(line, region.Height()))
	return true
}

// CenterOffset is the scroll offset that puts line in the middle of a view
// of the given height.
func CenterOffset(line, height int) int {
	return max(line-height/2, 0)
}

// ScrollSteps returns the intermediate offsets of an eased scroll from one
// offset to another over at most frames steps. The last step is always to;
// equal offsets need no steps.
func ScrollSteps(from, to, frames int) []int {
	if from == to {
		return nil
	}
	if frames < 1 {
		frames = 1
	}
	dist := to - from
	steps := make([]int, 0, frames)
	prev := from
	for i := 1; i <= frames; i++ {
		p := float64(i) / float64(frames)
		eased := 1 - (1-p)*(1-p)*(1-p)
		pos := from + int(float64(dist)*eased+0.5*sign(dist))
		if i == frames {
			pos = to
		}
		if pos == prev {
			continue
		}
		steps = append(steps, pos)
		prev = pos
	}
	return steps
}

func sign(n int) float64 {
	if n < 0 {
		return -1
	}
	return 1
}
