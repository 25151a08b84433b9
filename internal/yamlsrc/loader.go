// Package yamlsrc loads templates from YAML node-tree documents, for callers
// that keep template definitions in configuration rather than markup:
//
//	template:
//	  - tag: div
//	    attrs:
//	      class: card
//	    children:
//	      - text: "{{title}}"
package yamlsrc

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/templatize"
)

type document struct {
	Template []nodeSpec `yaml:"template"`
}

type nodeSpec struct {
	Tag      string            `yaml:"tag"`
	Text     string            `yaml:"text"`
	Attrs    map[string]string `yaml:"attrs"`
	Children []nodeSpec        `yaml:"children"`
}

// Load parses a YAML template document into a template.
func Load(data []byte) (*templatize.Template, error) {
	frag, err := Fragment(data)
	if err != nil {
		return nil, err
	}
	return templatize.NewTemplate(frag), nil
}

// Fragment parses a YAML template document into a node tree.
func Fragment(data []byte) (*dom.Fragment, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlsrc: unmarshal document: %w", err)
	}
	if len(doc.Template) == 0 {
		return nil, fmt.Errorf("yamlsrc: document has no template nodes")
	}

	frag := dom.NewFragment()
	var errs error
	for i, spec := range doc.Template {
		node, err := buildNode(spec, fmt.Sprintf("template[%d]", i))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		frag.Append(node)
	}
	if errs != nil {
		return nil, errs
	}
	return frag, nil
}

func buildNode(spec nodeSpec, at string) (*dom.Node, error) {
	switch {
	case spec.Tag != "" && spec.Text != "":
		return nil, fmt.Errorf("yamlsrc: %s: node declares both tag and text", at)
	case spec.Tag == "" && spec.Text == "":
		return nil, fmt.Errorf("yamlsrc: %s: node declares neither tag nor text", at)
	case spec.Text != "" && (len(spec.Attrs) > 0 || len(spec.Children) > 0):
		return nil, fmt.Errorf("yamlsrc: %s: text node cannot carry attrs or children", at)
	}

	if spec.Text != "" {
		return dom.NewText(spec.Text), nil
	}

	// Attribute order is part of the parse result (it fixes note order), so
	// map keys are applied sorted.
	names := make([]string, 0, len(spec.Attrs))
	for name := range spec.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]dom.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, dom.Attr{Name: name, Value: spec.Attrs[name]})
	}

	node := dom.NewElement(spec.Tag, attrs...)
	var errs error
	for i, child := range spec.Children {
		built, err := buildNode(child, fmt.Sprintf("%s.children[%d]", at, i))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		node.Append(built)
	}
	if errs != nil {
		return nil, errs
	}
	return node, nil
}
