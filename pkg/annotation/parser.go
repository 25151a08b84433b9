package annotation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-templatize/pkg/dom"
)

const eventAttrPrefix = "on-"

// Parser turns a template fragment into binding notes. Implementations must
// be safe to reuse across templates; results are memoized by the caller.
type Parser interface {
	Parse(frag *dom.Fragment) (*Notes, error)
}

// ParserFunc adapts a function into a Parser.
type ParserFunc func(frag *dom.Fragment) (*Notes, error)

// Parse delegates to the underlying function.
func (fn ParserFunc) Parse(frag *dom.Fragment) (*Notes, error) {
	return fn(frag)
}

// New returns the default parser.
func New() Parser {
	return defaultParser{}
}

type defaultParser struct{}

// Parse walks the fragment in document order, collecting text bindings,
// attribute bindings, and event listener annotations.
func (defaultParser) Parse(frag *dom.Fragment) (*Notes, error) {
	if frag == nil {
		return nil, fmt.Errorf("annotation: fragment is required")
	}

	notes := &Notes{ParentProps: make(map[string]struct{})}
	index := -1

	err := frag.Walk(func(n *dom.Node) error {
		index++
		notes.HasContent = true

		if n.Type == dom.TextNode {
			expr, err := scanExpression(n.Text)
			if err != nil {
				return fmt.Errorf("annotation: text node %d: %w", index, err)
			}
			if expr == nil {
				return nil
			}
			notes.Items = append(notes.Items, Note{
				Kind:   TextBinding,
				Index:  index,
				Path:   expr.path,
				Mode:   expr.mode,
				Prefix: expr.prefix,
				Suffix: expr.suffix,
			})
			notes.ParentProps[Root(expr.path)] = struct{}{}
			return nil
		}

		for _, attr := range n.Attrs {
			if strings.HasPrefix(attr.Name, eventAttrPrefix) {
				event := attr.Name[len(eventAttrPrefix):]
				if event == "" || strings.TrimSpace(attr.Value) == "" {
					return fmt.Errorf("annotation: node %d: malformed event annotation %q", index, attr.Name)
				}
				notes.Items = append(notes.Items, Note{
					Kind:    EventListener,
					Index:   index,
					Event:   event,
					Handler: strings.TrimSpace(attr.Value),
				})
				continue
			}

			expr, err := scanExpression(attr.Value)
			if err != nil {
				return fmt.Errorf("annotation: node %d attribute %q: %w", index, attr.Name, err)
			}
			if expr == nil {
				continue
			}
			notes.Items = append(notes.Items, Note{
				Kind:   AttrBinding,
				Index:  index,
				Attr:   attr.Name,
				Path:   expr.path,
				Mode:   expr.mode,
				Prefix: expr.prefix,
				Suffix: expr.suffix,
			})
			notes.ParentProps[Root(expr.path)] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Root returns the path segment before the first separator.
func Root(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

type expression struct {
	path   string
	mode   Mode
	prefix string
	suffix string
}

// scanExpression finds the single binding expression in a literal, if any.
// One expression per text node or attribute value is supported; surrounding
// literal text is preserved as prefix and suffix.
func scanExpression(literal string) (*expression, error) {
	open, mode := findOpen(literal)
	if open < 0 {
		return nil, nil
	}

	closing := "}}"
	if mode == OneWay {
		closing = "]]"
	}

	rest := literal[open+2:]
	end := strings.Index(rest, closing)
	if end < 0 {
		return nil, fmt.Errorf("unterminated binding expression in %q", literal)
	}

	path := strings.TrimSpace(rest[:end])
	if err := validatePath(path); err != nil {
		return nil, err
	}

	suffix := rest[end+2:]
	if again, _ := findOpen(suffix); again >= 0 {
		return nil, fmt.Errorf("multiple binding expressions in %q", literal)
	}

	return &expression{
		path:   path,
		mode:   mode,
		prefix: literal[:open],
		suffix: suffix,
	}, nil
}

func findOpen(s string) (int, Mode) {
	two := strings.Index(s, "{{")
	one := strings.Index(s, "[[")
	switch {
	case two < 0 && one < 0:
		return -1, OneWay
	case two < 0:
		return one, OneWay
	case one < 0 || two < one:
		return two, TwoWay
	default:
		return one, OneWay
	}
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty binding expression")
	}
	for _, segment := range strings.Split(path, ".") {
		if !validIdent(segment) {
			return fmt.Errorf("invalid path segment %q in %q", segment, path)
		}
	}
	return nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
