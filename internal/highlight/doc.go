// Package highlight turns a result tree and a search query into highlighted
// display rows, and moves a scrollable region to the first hit.
//
// # Overview
//
// Three pieces build on each other:
//
//   - Matcher / Split: cuts one string into literal and match segments.
//   - Render: walks a resulttree.Tree, splits every key and leaf value, and
//     numbers each match in canonical order.
//   - FocusFirstMatch: asks a Region where match 0 lives and scrolls it into
//     the middle of the view.
//
// # Matching
//
// Matching is case-insensitive and literal. The query is escaped before it is
// compiled, so characters such as "(", "*" or "." only ever match themselves:
//
//	highlight.Split("Item (Sale)", "(Sale)")
//	// [{literal "Item "} {match "(Sale)"}]
//
// A blank query never matches anything. Hits inside words are kept on purpose;
// "an" highlights inside "Banana".
//
// # Canonical Order
//
// Render assigns ordinals depth first: top-level entries in order, and within
// an entry its key before its value (or before its children). The TUI layout
// happens to follow the same order, but navigation only ever relies on the
// ordinal, never on screen position.
//
// # Purity
//
// Render and Split are pure. Rendering the same (tree, query) twice yields
// deep-equal output, and the input tree is never modified. Callers recompute
// the rendered form on every query or tree change rather than patching it.
package highlight
