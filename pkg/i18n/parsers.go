package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a translation document. The top-level keys are language tags
// and each value is a (possibly nested) map of translation keys:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// SupportsFileExtension reports whether the parser reads files with ext,
	// with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// JSONParser reads JSON translation documents.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitLanguages(data)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser reads YAML translation documents.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(data)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// ParserForFile returns the parser matching the file extension, or nil.
func ParserForFile(filename string) Parser {
	ext := filepath.Ext(filename)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// MultiParser dispatches on the file extension. It is what DirectoryAdapter
// uses to read a mix of YAML and JSON files.
type MultiParser struct {
	parsers []Parser
}

// NewMultiParser returns a parser supporting every extension of the given
// parsers; with no arguments it supports YAML and JSON.
func NewMultiParser(parsers ...Parser) *MultiParser {
	if len(parsers) == 0 {
		parsers = []Parser{NewYAMLParser(), NewJSONParser()}
	}
	return &MultiParser{parsers: parsers}
}

// Parse tries each parser in turn and returns the first success.
func (p *MultiParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	var errs []error
	for _, parser := range p.parsers {
		out, err := parser.Parse(ctx, content)
		if err == nil {
			return out, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func (p *MultiParser) SupportsFileExtension(ext string) bool {
	for _, parser := range p.parsers {
		if parser.SupportsFileExtension(ext) {
			return true
		}
	}
	return false
}

// parserFor returns the parser for ext inside a MultiParser, or p itself.
func parserFor(p Parser, ext string) Parser {
	if mp, ok := p.(*MultiParser); ok {
		for _, parser := range mp.parsers {
			if parser.SupportsFileExtension(ext) {
				return parser
			}
		}
	}
	return p
}

func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		tr, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected a map, got %T", ErrInvalidStructure, lang, val)
		}
		result[lang] = tr
	}
	return result, nil
}
