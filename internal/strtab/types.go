package strtab

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a leaf value in a string table.
type Kind string

const (
	// KindLiteral is a display string, possibly containing {placeholder} tokens.
	KindLiteral Kind = "literal"

	// KindReference is a [%key:...%] token delegating resolution to the
	// shared common table.
	KindReference Kind = "reference"
)

// KeyPath is a position in a string table tree.
//
// The canonical text form uses "." as separator (config.step.user.data.host).
// Inside reference tokens the separator is "::".
type KeyPath []string

// ParseKeyPath parses a dotted key path.
// Returns an error if the path is empty or contains an empty segment.
func ParseKeyPath(s string) (KeyPath, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidKey)
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if err := validateKey(seg); err != nil {
			return nil, fmt.Errorf("%w: path %q", err, s)
		}
	}
	return KeyPath(segments), nil
}

// String returns the dotted form of the key path.
func (p KeyPath) String() string {
	return strings.Join(p, ".")
}

// Entry is a flattened table row: a full key path and its raw value.
// Entries are the exchange format between tables and the compiled catalog.
type Entry struct {
	// Key is the dotted key path (config.error.cannot_connect).
	Key string `json:"key"`

	// Value is the raw value: a literal or a [%key:...%] reference token.
	Value string `json:"value"`

	// Kind reports whether Value is a literal or a reference token.
	Kind Kind `json:"kind"`
}

// Table is an immutable localized string table for one integration and locale.
//
// A Table is a tree of string-keyed nodes whose leaves are either literal
// display strings or reference tokens. Tables are built once by Parse or
// FromEntries and never mutated afterwards, so any number of goroutines may
// read a Table concurrently without synchronisation.
type Table struct {
	root *node
}

// node is a single position in the table tree.
// Exactly one of children/value is meaningful: leaf nodes carry a value,
// intermediate nodes carry children.
type node struct {
	children map[string]*node
	value    string
	leaf     bool
}

// Empty reports whether the table contains no entries.
func (t *Table) Empty() bool {
	return t == nil || t.root == nil || len(t.root.children) == 0
}

// Lookup returns the raw value at the given dotted key path.
//
// Returns:
//   - string: The raw value (literal or reference token)
//   - Kind: KindLiteral or KindReference
//   - error: ErrKeyNotFound if the path does not exist,
//     ErrNotALeaf if it addresses an intermediate node
func (t *Table) Lookup(path string) (string, Kind, error) {
	kp, err := ParseKeyPath(path)
	if err != nil {
		return "", "", err
	}
	return t.lookup(kp)
}

// lookup walks the tree along the parsed key path.
func (t *Table) lookup(path KeyPath) (string, Kind, error) {
	if t == nil || t.root == nil {
		return "", "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	cur := t.root
	for _, seg := range path {
		if cur.leaf {
			return "", "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		next, ok := cur.children[seg]
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		cur = next
	}
	if !cur.leaf {
		return "", "", fmt.Errorf("%w: %s", ErrNotALeaf, path)
	}
	kind := KindLiteral
	if IsReference(cur.value) {
		kind = KindReference
	}
	return cur.value, kind, nil
}

// Entries returns all leaf entries of the table, flattened to dotted key
// paths and sorted by key. The result is a fresh slice on every call.
func (t *Table) Entries() []Entry {
	if t == nil || t.root == nil {
		return nil
	}
	var entries []Entry
	collectEntries(t.root, nil, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Keys returns all leaf key paths, sorted.
func (t *Table) Keys() []string {
	entries := t.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// collectEntries walks the tree depth-first, accumulating leaf entries.
func collectEntries(n *node, prefix KeyPath, out *[]Entry) {
	if n.leaf {
		kind := KindLiteral
		if IsReference(n.value) {
			kind = KindReference
		}
		*out = append(*out, Entry{
			Key:   prefix.String(),
			Value: n.value,
			Kind:  kind,
		})
		return
	}
	for key, child := range n.children {
		collectEntries(child, append(prefix, key), out)
	}
}

// FromEntries rebuilds a table from flattened entries (the inverse of
// Entries). This is used when loading compiled tables from the catalog.
//
// Returns an error if a key path is invalid, duplicated, or conflicts with
// another entry (one entry's leaf being another entry's prefix).
func FromEntries(entries []Entry) (*Table, error) {
	root := &node{children: make(map[string]*node)}
	for _, e := range entries {
		path, err := ParseKeyPath(e.Key)
		if err != nil {
			return nil, err
		}
		cur := root
		for i, seg := range path {
			last := i == len(path)-1
			child, ok := cur.children[seg]
			if last {
				if ok {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key)
				}
				cur.children[seg] = &node{value: e.Value, leaf: true}
				continue
			}
			if !ok {
				child = &node{children: make(map[string]*node)}
				cur.children[seg] = child
			} else if child.leaf {
				return nil, fmt.Errorf("%w: %s conflicts with a parent leaf", ErrDuplicateKey, e.Key)
			}
			cur = child
		}
	}
	return &Table{root: root}, nil
}
