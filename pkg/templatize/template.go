package templatize

import (
	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/dom"
)

// Template is an immutable description of bindable structure plus a memoized
// content record shared by every templatizer and instance of the fragment.
// The record is populated exactly once, on first compilation.
type Template struct {
	Root *dom.Fragment

	content *content
}

// NewTemplate wraps a fragment for templatizing.
func NewTemplate(root *dom.Fragment) *Template {
	if root == nil {
		root = dom.NewFragment()
	}
	return &Template{Root: root}
}

// content is the per-template memo: parsed notes, the compiled constructor,
// and bridging state. Shared by all instances; never mutated per-instance.
type content struct {
	notes        *annotation.Notes
	ctor         *constructor
	pathBindable bool
}

func (t *Template) ensureContent() *content {
	if t.content == nil {
		t.content = &content{}
	}
	return t.content
}
