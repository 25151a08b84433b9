package templatize_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/templatize"
	"github.com/goliatone/go-templatize/pkg/testsupport"
)

func TestAnnotatedListenerAttributesInstance(t *testing.T) {
	var gotModel any
	var gotTarget *dom.Node

	host := templatize.New(templatize.WithHandler("handleTap", func(ev *dom.Event) {
		gotModel = ev.Model
		gotTarget = ev.Target
	}))
	if err := host.Templatize(testsupport.MustLoadHTML(t, `<button on-click="handleTap">go</button>`)); err != nil {
		t.Fatalf("templatize: %v", err)
	}

	inst := testsupport.MustStamp(t, host, nil)
	button := inst.Children()[0]
	button.Dispatch(&dom.Event{Type: "click"})

	if gotModel != inst {
		t.Fatalf("event model = %v, want the stamping instance", gotModel)
	}
	if gotTarget != button {
		t.Fatalf("event target = %v", gotTarget)
	}
}

func TestListenerRegisteredAfterConstruction(t *testing.T) {
	host := templatize.New()
	host.RegisterHandler("handleTap", func(*dom.Event) {})
	if err := host.Templatize(testsupport.MustLoadHTML(t, `<button on-click="handleTap">go</button>`)); err != nil {
		t.Fatalf("templatize: %v", err)
	}
	if _, err := host.Stamp(nil); err != nil {
		t.Fatalf("stamp: %v", err)
	}
}

func TestMissingHandlerFailsStamp(t *testing.T) {
	host := templatize.New()
	if err := host.Templatize(testsupport.MustLoadHTML(t, `<button on-click="nope">go</button>`)); err != nil {
		t.Fatalf("templatize: %v", err)
	}

	_, err := host.Stamp(nil)
	if err == nil || !strings.Contains(err.Error(), `handler "nope"`) {
		t.Fatalf("stamp error = %v", err)
	}
}

func TestEachInstanceGetsOwnModelTag(t *testing.T) {
	var models []any
	host := templatize.New(templatize.WithHandler("handleTap", func(ev *dom.Event) {
		models = append(models, ev.Model)
	}))
	if err := host.Templatize(testsupport.MustLoadHTML(t, `<button on-click="handleTap">go</button>`)); err != nil {
		t.Fatalf("templatize: %v", err)
	}

	a := testsupport.MustStamp(t, host, nil)
	b := testsupport.MustStamp(t, host, nil)

	a.Children()[0].Dispatch(&dom.Event{Type: "click"})
	b.Children()[0].Dispatch(&dom.Event{Type: "click"})

	if len(models) != 2 || models[0] != a || models[1] != b {
		t.Fatalf("models = %v, want [a b]", models)
	}
}
