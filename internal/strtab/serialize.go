package strtab

import (
	"encoding/json"
	"fmt"
)

// Serialize renders the table back to a canonical JSON document.
//
// Keys are emitted in sorted order (encoding/json sorts map keys), so
// serialization is stable: Parse(Serialize(t)) yields a table with an
// identical key set and values.
func (t *Table) Serialize() ([]byte, error) {
	tree := t.toMap()
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing table: %w", err)
	}
	// Trailing newline matches the convention of checked-in strings.json files.
	return append(data, '\n'), nil
}

// toMap converts the table tree into nested map[string]any for marshalling.
func (t *Table) toMap() map[string]any {
	if t == nil || t.root == nil {
		return map[string]any{}
	}
	return nodeToMap(t.root)
}

// nodeToMap recursively converts an intermediate node to a map.
func nodeToMap(n *node) map[string]any {
	m := make(map[string]any, len(n.children))
	for key, child := range n.children {
		if child.leaf {
			m[key] = child.value
		} else {
			m[key] = nodeToMap(child)
		}
	}
	return m
}
