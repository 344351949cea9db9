package resulttree

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Parse decodes a JSON document into a Tree, preserving key order.
//
// Objects become mappings, arrays become mappings keyed by index, strings
// become leaves and every other scalar becomes a leaf holding its raw JSON
// text. A top-level scalar is wrapped as {"value": ...}.
func Parse(data []byte) (*Tree, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json payload (%d bytes)", len(data))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() && !root.IsArray() {
		t := New()
		t.Set("value", leafText(root))
		return t, nil
	}
	return fromResult(root), nil
}

func fromResult(value gjson.Result) *Tree {
	t := New()
	index := 0
	value.ForEach(func(key, item gjson.Result) bool {
		name := key.String()
		if value.IsArray() {
			name = strconv.Itoa(index)
			index++
		}
		if item.IsObject() || item.IsArray() {
			t.SetChild(name, fromResult(item))
		} else {
			t.Set(name, leafText(item))
		}
		return true
	})
	return t
}

func leafText(value gjson.Result) string {
	if value.Type == gjson.String {
		return value.String()
	}
	return value.Raw
}
