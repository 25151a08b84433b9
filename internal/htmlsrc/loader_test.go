package htmlsrc_test

import (
	"testing"

	"github.com/goliatone/go-templatize/internal/htmlsrc"
	"github.com/goliatone/go-templatize/pkg/dom"
)

func TestFragmentKeepsBindingsAndListeners(t *testing.T) {
	frag, err := htmlsrc.Fragment(`<div class="card"><span>{{title}}</span><button on-click="handleTap">go</button></div>`)
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if len(frag.Children) != 1 {
		t.Fatalf("top-level children = %d", len(frag.Children))
	}

	card := frag.Children[0]
	if card.Tag != "div" {
		t.Fatalf("tag = %q", card.Tag)
	}
	if v, _ := card.Attr("class"); v != "card" {
		t.Fatalf("class = %q", v)
	}
	if got := card.Children[0].Children[0].Text; got != "{{title}}" {
		t.Fatalf("binding expression mangled: %q", got)
	}
	if v, ok := card.Children[1].Attr("on-click"); !ok || v != "handleTap" {
		t.Fatalf("listener annotation lost: %q, %v", v, ok)
	}
}

func TestFragmentStripsScriptContent(t *testing.T) {
	frag, err := htmlsrc.Fragment(`<div><script>alert(1)</script><span>ok</span></div>`)
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}

	_ = frag.Walk(func(n *dom.Node) error {
		if n.Tag == "script" {
			t.Fatalf("script element survived sanitization")
		}
		return nil
	})
}

func TestFragmentStripsNativeHandlers(t *testing.T) {
	frag, err := htmlsrc.Fragment(`<button onclick="evil()" on-click="handleTap">go</button>`)
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}

	button := frag.Children[0]
	if _, ok := button.Attr("onclick"); ok {
		t.Fatalf("native onclick handler survived sanitization")
	}
	if _, ok := button.Attr("on-click"); !ok {
		t.Fatalf("binding listener attribute stripped")
	}
}

func TestFragmentSkipsWhitespaceText(t *testing.T) {
	frag, err := htmlsrc.Fragment("<div>\n  <span>a</span>\n  <span>b</span>\n</div>")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}

	for _, child := range frag.Children[0].Children {
		if child.Type == dom.TextNode {
			t.Fatalf("whitespace-only text node kept: %q", child.Text)
		}
	}
	if got := len(frag.Children[0].Children); got != 2 {
		t.Fatalf("element children = %d, want 2", got)
	}
}

func TestLoadWrapsTemplate(t *testing.T) {
	tmpl, err := htmlsrc.Load(`<span>{{title}}</span>`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tmpl == nil || tmpl.Root == nil || len(tmpl.Root.Children) != 1 {
		t.Fatalf("template not built from markup")
	}
}
