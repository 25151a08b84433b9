// Package htmlsrc loads templates from HTML fragment markup. Markup passes a
// sanitizing policy before parsing, so templates sourced from files or user
// input cannot smuggle script content or native DOM handlers into stamped
// subtrees.
package htmlsrc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/templatize"
)

// Load parses sanitized fragment markup into a template.
func Load(markup string) (*templatize.Template, error) {
	frag, err := Fragment(markup)
	if err != nil {
		return nil, err
	}
	return templatize.NewTemplate(frag), nil
}

// Fragment parses sanitized fragment markup into a node tree without
// wrapping it in a template.
func Fragment(markup string) (*dom.Fragment, error) {
	cleaned := templatePolicy().Sanitize(markup)

	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	parsed, err := html.ParseFragment(strings.NewReader(cleaned), body)
	if err != nil {
		return nil, fmt.Errorf("htmlsrc: parse fragment: %w", err)
	}

	frag := dom.NewFragment()
	for _, n := range parsed {
		if converted := convert(n); converted != nil {
			frag.Append(converted)
		}
	}
	return frag, nil
}

func convert(n *html.Node) *dom.Node {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return dom.NewText(text)
	case html.ElementNode:
		attrs := make([]dom.Attr, 0, len(n.Attr))
		for _, attr := range n.Attr {
			attrs = append(attrs, dom.Attr{Name: attr.Key, Value: attr.Val})
		}
		node := dom.NewElement(n.Data, attrs...)
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if converted := convert(child); converted != nil {
				node.Append(converted)
			}
		}
		return node
	default:
		return nil
	}
}
