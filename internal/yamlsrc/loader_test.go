package yamlsrc_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-templatize/internal/yamlsrc"
	"github.com/goliatone/go-templatize/pkg/dom"
)

const cardDoc = `
template:
  - tag: div
    attrs:
      class: card
    children:
      - tag: span
        children:
          - text: "{{title}}"
      - tag: input
        attrs:
          value: "{{query}}"
          type: text
`

func TestFragmentBuildsNodeTree(t *testing.T) {
	frag, err := yamlsrc.Fragment([]byte(cardDoc))
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}

	card := frag.Children[0]
	if card.Tag != "div" {
		t.Fatalf("tag = %q", card.Tag)
	}
	if v, _ := card.Attr("class"); v != "card" {
		t.Fatalf("class = %q", v)
	}
	if got := card.Children[0].Children[0].Text; got != "{{title}}" {
		t.Fatalf("text binding = %q", got)
	}

	// Attrs come out sorted by name so note indexes stay stable.
	input := card.Children[1]
	if len(input.Attrs) != 2 || input.Attrs[0].Name != "type" || input.Attrs[1].Name != "value" {
		t.Fatalf("attr order = %v", input.Attrs)
	}
}

func TestFragmentValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "tag and text",
			doc:  "template:\n  - tag: div\n    text: nope\n",
			want: "both tag and text",
		},
		{
			name: "neither tag nor text",
			doc:  "template:\n  - attrs:\n      class: card\n",
			want: "neither tag nor text",
		},
		{
			name: "text with children",
			doc:  "template:\n  - text: hi\n    children:\n      - text: nested\n",
			want: "cannot carry attrs or children",
		},
		{
			name: "empty document",
			doc:  "template: []\n",
			want: "no template nodes",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := yamlsrc.Fragment([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestFragmentCollectsAllErrors(t *testing.T) {
	doc := "template:\n  - tag: div\n    text: first\n  - attrs:\n      class: second\n"
	_, err := yamlsrc.Fragment([]byte(doc))
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "template[0]") || !strings.Contains(msg, "template[1]") {
		t.Fatalf("errors not aggregated across nodes: %v", msg)
	}
}

func TestLoadWrapsTemplate(t *testing.T) {
	tmpl, err := yamlsrc.Load([]byte(cardDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tmpl.Root == nil || len(tmpl.Root.Children) != 1 {
		t.Fatalf("template not built")
	}
	if tmpl.Root.Children[0].Type != dom.ElementNode {
		t.Fatalf("root child type = %v", tmpl.Root.Children[0].Type)
	}
}
