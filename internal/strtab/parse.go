package strtab

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format identifies a string-table document format.
type Format string

const (
	// FormatJSON is the canonical document format (strings.json).
	FormatJSON Format = "json"

	// FormatYAML is accepted for hand-authored tables.
	FormatYAML Format = "yaml"
)

// Parse parses a string-table document into an immutable Table.
//
// The document must be a tree of string-keyed objects whose leaves are
// strings (literals or [%key:...%] reference tokens). Duplicate keys within
// a single object are rejected, as are non-string leaves and non-object
// intermediate values.
//
// Parameters:
//   - data: Raw document bytes
//   - format: FormatJSON or FormatYAML
//
// Returns:
//   - *Table: Parsed table (empty document yields an empty table)
//   - error: ErrInvalidDocument, ErrDuplicateKey, or ErrInvalidKey
func Parse(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidDocument, format)
	}
}

// parseJSON parses a JSON document with a token-level walk.
//
// encoding/json's Unmarshal silently keeps the last of duplicate keys, so
// duplicate detection requires walking the token stream directly.
func parseJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: document root must be an object", ErrInvalidDocument)
	}

	root, err := parseJSONObject(dec, nil)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the root object.
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("%w: trailing content after document", ErrInvalidDocument)
	}

	return &Table{root: root}, nil
}

// parseJSONObject parses one JSON object into a tree node.
// The opening '{' has already been consumed; the closing '}' is consumed
// before returning. path is the position of this object, for error messages.
func parseJSONObject(dec *json.Decoder, path KeyPath) (*node, error) {
	n := &node{children: make(map[string]*node)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key at %q", ErrInvalidDocument, path.String())
		}
		if err := validateKey(key); err != nil {
			return nil, fmt.Errorf("%w: %q at %q", ErrInvalidKey, key, path.String())
		}
		if _, dup := n.children[key]; dup {
			return nil, fmt.Errorf("%w: %q at %q", ErrDuplicateKey, key, path.String())
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		switch v := valTok.(type) {
		case string:
			n.children[key] = &node{value: v, leaf: true}
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("%w: value of %q must be a string or object", ErrInvalidDocument, append(path, key).String())
			}
			child, err := parseJSONObject(dec, append(path, key))
			if err != nil {
				return nil, err
			}
			n.children[key] = child
		default:
			return nil, fmt.Errorf("%w: value of %q must be a string or object", ErrInvalidDocument, append(path, key).String())
		}
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return n, nil
}

// parseYAML parses a YAML document by walking the yaml.Node tree.
// An empty document yields an empty table.
func parseYAML(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Table{root: &node{children: make(map[string]*node)}}, nil
	}

	rootNode := doc.Content[0]
	if rootNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping", ErrInvalidDocument)
	}

	root, err := parseYAMLMapping(rootNode, nil)
	if err != nil {
		return nil, err
	}
	return &Table{root: root}, nil
}

// parseYAMLMapping converts one YAML mapping node into a tree node.
func parseYAMLMapping(m *yaml.Node, path KeyPath) (*node, error) {
	n := &node{children: make(map[string]*node)}

	// Mapping content is a flat list of alternating key/value nodes.
	for i := 0; i+1 < len(m.Content); i += 2 {
		keyNode := m.Content[i]
		valNode := m.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
			return nil, fmt.Errorf("%w: non-string key at %q (line %d)", ErrInvalidDocument, path.String(), keyNode.Line)
		}
		key := keyNode.Value
		if err := validateKey(key); err != nil {
			return nil, fmt.Errorf("%w: %q at %q (line %d)", ErrInvalidKey, key, path.String(), keyNode.Line)
		}
		if _, dup := n.children[key]; dup {
			return nil, fmt.Errorf("%w: %q at %q (line %d)", ErrDuplicateKey, key, path.String(), keyNode.Line)
		}

		switch {
		case valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!str":
			n.children[key] = &node{value: valNode.Value, leaf: true}
		case valNode.Kind == yaml.MappingNode:
			child, err := parseYAMLMapping(valNode, append(path, key))
			if err != nil {
				return nil, err
			}
			n.children[key] = child
		default:
			return nil, fmt.Errorf("%w: value of %q must be a string or mapping (line %d)", ErrInvalidDocument, append(path, key).String(), valNode.Line)
		}
	}

	return n, nil
}
