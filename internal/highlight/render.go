package highlight

import "github.com/five82/shoplens/internal/resulttree"

// Span is a segment tagged with its position among all matches of a render.
// Ordinal is -1 for literal text.
type Span struct {
	Segment
	Ordinal int
}

// Node mirrors one resulttree.Entry. Leaves carry Value spans; mappings carry
// Children (possibly none).
type Node struct {
	Key      []Span
	Value    []Span
	Children []Node
	Leaf     bool
}

// Rendered is the display structure derived from a tree and a query.
type Rendered struct {
	Query   string
	Nodes   []Node
	Matches int
}

// Render applies the matcher to every key and leaf value of tree at every
// depth. Matches are numbered in canonical order: entries in order, depth
// first, a key before its value or children. The tree is not modified.
func Render(tree *resulttree.Tree, query string) Rendered {
	m := NewMatcher(query)
	ordinal := 0
	nodes := renderEntries(tree, m, &ordinal)
	return Rendered{Query: query, Nodes: nodes, Matches: ordinal}
}

func renderEntries(tree *resulttree.Tree, m Matcher, ordinal *int) []Node {
	if tree.Len() == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		node := Node{Key: tag(m.Split(e.Key), ordinal)}
		if e.IsLeaf() {
			node.Leaf = true
			node.Value = tag(m.Split(e.Value), ordinal)
		} else {
			node.Children = renderEntries(e.Child, m, ordinal)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func tag(segs []Segment, ordinal *int) []Span {
	spans := make([]Span, len(segs))
	for i, s := range segs {
		spans[i] = Span{Segment: s, Ordinal: -1}
		if s.Kind == Match {
			spans[i].Ordinal = *ordinal
			*ordinal++
		}
	}
	return spans
}

// Line is one display row of a rendered tree.
type Line struct {
	Depth int
	Key   []Span
	Value []Span
	Leaf  bool
}

// Layout is a rendered tree flattened into rows, with the row of every match
// ordinal recorded.
type Layout struct {
	Lines     []Line
	matchLine []int
}

// Layout flattens the rendered tree: a mapping entry occupies a header row
// followed by its children one level deeper; a leaf occupies one row.
func (r Rendered) Layout() Layout {
	l := Layout{matchLine: make([]int, r.Matches)}
	l.add(r.Nodes, 0)
	return l
}

func (l *Layout) add(nodes []Node, depth int) {
	for _, n := range nodes {
		row := len(l.Lines)
		l.Lines = append(l.Lines, Line{Depth: depth, Key: n.Key, Value: n.Value, Leaf: n.Leaf})
		l.record(n.Key, row)
		l.record(n.Value, row)
		if !n.Leaf {
			l.add(n.Children, depth+1)
		}
	}
}

func (l *Layout) record(spans []Span, row int) {
	for _, s := range spans {
		if s.Ordinal >= 0 && s.Ordinal < len(l.matchLine) {
			l.matchLine[s.Ordinal] = row
		}
	}
}

// MatchLine returns the row holding match ordinal.
func (l Layout) MatchLine(ordinal int) (int, bool) {
	if ordinal < 0 || ordinal >= len(l.matchLine) {
		return 0, false
	}
	return l.matchLine[ordinal], true
}

// Matches returns the number of matches placed in the layout.
func (l Layout) Matches() int {
	return len(l.matchLine)
}
