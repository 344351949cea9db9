// Package resulttree models the nested key/value results returned by the
// recommendation service.
//
// A Tree is an ordered mapping: entries keep the order in which the service
// emitted them, and each entry holds either a string leaf or a nested Tree.
// The service normally answers two levels deep (product → {other → score}),
// but nothing here assumes a fixed depth.
package resulttree

// Entry is one key of a mapping. Child is nil for string leaves.
type Entry struct {
	Key   string
	Value string
	Child *Tree
}

// IsLeaf reports whether the entry holds a plain value.
func (e Entry) IsLeaf() bool {
	return e.Child == nil
}

// Tree is an ordered mapping from string keys to leaves or sub-trees.
type Tree struct {
	Entries []Entry
}

// ErrorKey is the key the service (and the client) use for error payloads.
const ErrorKey = "error"

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// ErrorTree returns the single-entry mapping {"error": message}.
func ErrorTree(message string) *Tree {
	return &Tree{Entries: []Entry{{Key: ErrorKey, Value: message}}}
}

// Len returns the number of top-level entries.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Get returns the entry for key.
func (t *Tree) Get(key string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	for _, e := range t.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Set stores a leaf value. An existing key keeps its position.
func (t *Tree) Set(key, value string) {
	t.put(Entry{Key: key, Value: value})
}

// SetChild stores a nested mapping. An existing key keeps its position.
func (t *Tree) SetChild(key string, child *Tree) {
	if child == nil {
		child = New()
	}
	t.put(Entry{Key: key, Child: child})
}

func (t *Tree) put(entry Entry) {
	for i := range t.Entries {
		if t.Entries[i].Key == entry.Key {
			t.Entries[i] = entry
			return
		}
	}
	t.Entries = append(t.Entries, entry)
}

// ErrorMessage returns the message of a single-entry error tree.
func (t *Tree) ErrorMessage() (string, bool) {
	if t.Len() != 1 {
		return "", false
	}
	e := t.Entries[0]
	if e.Key != ErrorKey || !e.IsLeaf() {
		return "", false
	}
	return e.Value, true
}

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	dup := &Tree{Entries: make([]Entry, len(t.Entries))}
	for i, e := range t.Entries {
		dup.Entries[i] = Entry{Key: e.Key, Value: e.Value, Child: e.Child.Clone()}
	}
	return dup
}

// Leaves counts the leaf values at any depth.
func (t *Tree) Leaves() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, e := range t.Entries {
		if e.IsLeaf() {
			n++
			continue
		}
		n += e.Child.Leaves()
	}
	return n
}
