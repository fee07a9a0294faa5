package validator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a schema document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseSchemas builds schemas from a document that maps schema names to their
// definitions:
//
//	user:
//	  labels:
//	    email: E-mail address
//	  properties:
//	    email: [Required, Email]
//	    name: [Optional, {MinLength: [3]}]
//	    address: {nested: address}
//	address:
//	  properties:
//	    city: [Required]
//
// Rule entries are rule names or single-key maps from a rule name to its
// parameters. {nested: name} refers to another schema of the same document,
// in any position. JSON documents use the same structure. Property order in
// the document is kept.
func ParseSchemas(data []byte, format Format) (map[string]*Schema, error) {
	switch format {
	case FormatYAML, FormatJSON:
		// JSON is a subset of YAML 1.2, so one decoder keeps key order for both.
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if doc.Kind == 0 {
		return map[string]*Schema{}, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, invalidNode(root, "expected a mapping of schema names")
	}

	schemas := make(map[string]*Schema, len(root.Content)/2)
	for i := 0; i < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if _, dup := schemas[name]; dup {
			return nil, invalidNode(root.Content[i], "duplicate schema %q", name)
		}
		schemas[name] = NewSchema(name)
	}

	for i := 0; i < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if err := buildSchema(schemas[name], root.Content[i+1], schemas); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

// LoadSchemas reads a whole schema document from r.
func LoadSchemas(r io.Reader, format Format) (map[string]*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	return ParseSchemas(data, format)
}

// LoadSchemaFile reads a schema document, inferring its format from the extension.
func LoadSchemaFile(path string) (map[string]*Schema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	schemas, err := ParseSchemas(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}

func buildSchema(s *Schema, node *yaml.Node, all map[string]*Schema) error {
	if node.Kind != yaml.MappingNode {
		return invalidNode(node, "schema %q: expected a mapping", s.Name())
	}

	for i := 0; i < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "labels":
			var labels map[string]string
			if err := value.Decode(&labels); err != nil {
				return invalidNode(value, "schema %q: labels: %v", s.Name(), err)
			}
			for prop, label := range labels {
				s.Label(prop, label)
			}
		case "properties":
			if value.Kind != yaml.MappingNode {
				return invalidNode(value, "schema %q: properties must be a mapping", s.Name())
			}
			for j := 0; j < len(value.Content); j += 2 {
				prop := value.Content[j].Value
				refs, err := parseChain(value.Content[j+1], all)
				if err != nil {
					return fmt.Errorf("schema %q, property %q: %w", s.Name(), prop, err)
				}
				s.Bind(prop, refs...)
			}
		default:
			return invalidNode(key, "schema %q: unknown key %q", s.Name(), key.Value)
		}
	}
	return nil
}

// parseChain accepts a list of rule entries or a single entry.
func parseChain(node *yaml.Node, all map[string]*Schema) ([]any, error) {
	if node.Kind != yaml.SequenceNode {
		ref, err := parseEntry(node, all)
		if err != nil {
			return nil, err
		}
		return []any{ref}, nil
	}

	refs := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		ref, err := parseEntry(item, all)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseEntry(node *yaml.Node, all map[string]*Schema) (Ref, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Normalize(node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return Ref{}, invalidNode(node, "rule entry must have exactly one key")
		}
		name, value := node.Content[0].Value, node.Content[1]
		if name == "nested" {
			nested, ok := all[value.Value]
			if !ok {
				return Ref{}, fmt.Errorf("%w: %q (line %d)", ErrUnknownSchema, value.Value, value.Line)
			}
			return ValidateNested(nested), nil
		}

		var params any
		if err := value.Decode(&params); err != nil {
			return Ref{}, invalidNode(value, "rule %q: %v", name, err)
		}
		return Normalize(map[string]any{name: params})
	}
	return Ref{}, invalidNode(node, "unsupported rule entry")
}

func invalidNode(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidSchema, node.Line, fmt.Sprintf(format, args...))
}
