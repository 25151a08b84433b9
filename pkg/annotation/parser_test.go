package annotation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/dom"
)

func parse(t *testing.T, frag *dom.Fragment) *annotation.Notes {
	t.Helper()
	notes, err := annotation.New().Parse(frag)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return notes
}

func TestParseTextBinding(t *testing.T) {
	frag := dom.NewFragment(
		dom.NewElement("span").Append(dom.NewText("Hello {{name}}!")),
	)

	notes := parse(t, frag)
	if len(notes.Items) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes.Items))
	}

	want := annotation.Note{
		Kind:   annotation.TextBinding,
		Index:  1,
		Path:   "name",
		Mode:   annotation.TwoWay,
		Prefix: "Hello ",
		Suffix: "!",
	}
	if diff := cmp.Diff(want, notes.Items[0]); diff != "" {
		t.Fatalf("note mismatch (-want +got):\n%s", diff)
	}
	if _, ok := notes.ParentProps["name"]; !ok {
		t.Fatalf("parent props missing name: %#v", notes.ParentProps)
	}
}

func TestParseOneWayPathBinding(t *testing.T) {
	frag := dom.NewFragment(
		dom.NewElement("span").Append(dom.NewText("[[user.name]]")),
	)

	notes := parse(t, frag)
	note := notes.Items[0]
	if note.Mode != annotation.OneWay {
		t.Fatalf("expected one-way mode, got %v", note.Mode)
	}
	if note.Path != "user.name" {
		t.Fatalf("unexpected path %q", note.Path)
	}
	if _, ok := notes.ParentProps["user"]; !ok {
		t.Fatalf("parent props should hold the path root: %#v", notes.ParentProps)
	}
}

func TestParseAttrBinding(t *testing.T) {
	frag := dom.NewFragment(
		dom.NewElement("input", dom.Attr{Name: "value", Value: "{{query}}"}),
	)

	notes := parse(t, frag)
	note := notes.Items[0]
	if note.Kind != annotation.AttrBinding || note.Attr != "value" || note.Path != "query" {
		t.Fatalf("unexpected attr note: %#v", note)
	}
	if note.Index != 0 {
		t.Fatalf("attr note index = %d, want 0", note.Index)
	}
}

func TestParseEventAnnotation(t *testing.T) {
	frag := dom.NewFragment(
		dom.NewElement("button", dom.Attr{Name: "on-click", Value: "handleTap"}),
	)

	notes := parse(t, frag)
	note := notes.Items[0]
	if note.Kind != annotation.EventListener || note.Event != "click" || note.Handler != "handleTap" {
		t.Fatalf("unexpected event note: %#v", note)
	}
	if len(notes.ParentProps) != 0 {
		t.Fatalf("event annotations must not contribute parent props: %#v", notes.ParentProps)
	}
}

func TestParseCollectsAllRoots(t *testing.T) {
	frag := dom.NewFragment(
		dom.NewElement("div").Append(
			dom.NewText("{{title}}"),
			dom.NewElement("span").Append(dom.NewText("[[meta.author]]")),
			dom.NewElement("input", dom.Attr{Name: "value", Value: "{{item}}"}),
		),
	)

	notes := parse(t, frag)
	var roots []string
	for prop := range notes.ParentProps {
		roots = append(roots, prop)
	}
	for _, want := range []string{"title", "meta", "item"} {
		if _, ok := notes.ParentProps[want]; !ok {
			t.Fatalf("missing parent prop %q in %v", want, roots)
		}
	}
	if !notes.HasContent {
		t.Fatalf("expected HasContent")
	}
}

func TestParseEmptyFragment(t *testing.T) {
	notes := parse(t, dom.NewFragment())
	if notes.HasContent {
		t.Fatalf("empty fragment must report no content")
	}
	if len(notes.Items) != 0 || len(notes.ParentProps) != 0 {
		t.Fatalf("empty fragment produced notes: %#v", notes)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		frag *dom.Fragment
		want string
	}{
		{
			name: "unterminated",
			frag: dom.NewFragment(dom.NewText("{{title")),
			want: "unterminated",
		},
		{
			name: "empty expression",
			frag: dom.NewFragment(dom.NewText("{{ }}")),
			want: "empty binding",
		},
		{
			name: "invalid segment",
			frag: dom.NewFragment(dom.NewText("{{user..name}}")),
			want: "invalid path segment",
		},
		{
			name: "multiple expressions",
			frag: dom.NewFragment(dom.NewText("{{a}} and {{b}}")),
			want: "multiple binding",
		},
		{
			name: "empty event",
			frag: dom.NewFragment(dom.NewElement("button", dom.Attr{Name: "on-click", Value: " "})),
			want: "malformed event",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := annotation.New().Parse(tc.frag)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestRoot(t *testing.T) {
	if got := annotation.Root("user.name.first"); got != "user" {
		t.Fatalf("Root = %q", got)
	}
	if got := annotation.Root("title"); got != "title" {
		t.Fatalf("Root = %q", got)
	}
}
