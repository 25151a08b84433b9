// Package testsupport provides fixture helpers shared by the binding-engine
// test suites.
package testsupport

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-templatize/internal/htmlsrc"
	"github.com/goliatone/go-templatize/internal/yamlsrc"
	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/templatize"
)

// MustLoadHTML parses fragment markup into a template, failing the test on
// parse errors.
func MustLoadHTML(t *testing.T, markup string) *templatize.Template {
	t.Helper()
	tmpl, err := htmlsrc.Load(markup)
	if err != nil {
		t.Fatalf("load html template: %v", err)
	}
	return tmpl
}

// MustLoadYAML parses a YAML template document, failing the test on errors.
func MustLoadYAML(t *testing.T, doc string) *templatize.Template {
	t.Helper()
	tmpl, err := yamlsrc.Load([]byte(doc))
	if err != nil {
		t.Fatalf("load yaml template: %v", err)
	}
	return tmpl
}

// MustStamp stamps an instance, failing the test on construction errors.
func MustStamp(t *testing.T, host *templatize.Templatizer, model map[string]any) *templatize.Instance {
	t.Helper()
	inst, err := host.Stamp(model)
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}
	return inst
}

// HookCall records one forwarding-hook invocation.
type HookCall struct {
	Kind     string
	Instance *templatize.Instance
	Name     string
	Value    any
}

func (c HookCall) String() string {
	return fmt.Sprintf("%s(%s=%v)", c.Kind, c.Name, c.Value)
}

// RecordingHooks captures every forwarding-hook invocation while preserving
// the default downward broadcast, so propagation assertions stay end to end.
type RecordingHooks struct {
	Calls []HookCall

	host *templatize.Templatizer
}

// Hooks returns a hook set wired to record into the receiver. Bind must be
// called before any parent-side hook fires.
func (r *RecordingHooks) Hooks() templatize.Hooks {
	return templatize.Hooks{
		ForwardParentProp: func(prop string, value any) {
			r.Calls = append(r.Calls, HookCall{Kind: "parentProp", Name: prop, Value: value})
			if r.host != nil {
				r.host.BroadcastProp(prop, value)
			}
		},
		ForwardParentPath: func(path string, value any) {
			r.Calls = append(r.Calls, HookCall{Kind: "parentPath", Name: path, Value: value})
			if r.host != nil {
				r.host.BroadcastPath(path, value)
			}
		},
		ForwardInstanceProp: func(inst *templatize.Instance, prop string, value any) {
			r.Calls = append(r.Calls, HookCall{Kind: "instanceProp", Instance: inst, Name: prop, Value: value})
		},
		ForwardInstancePath: func(inst *templatize.Instance, path string, value any) {
			r.Calls = append(r.Calls, HookCall{Kind: "instancePath", Instance: inst, Name: path, Value: value})
		},
	}
}

// Bind attaches the templatizer whose instances the parent-side hooks should
// keep broadcasting to.
func (r *RecordingHooks) Bind(host *templatize.Templatizer) { r.host = host }

// ByKind filters the recorded calls.
func (r *RecordingHooks) ByKind(kind string) []HookCall {
	var out []HookCall
	for _, call := range r.Calls {
		if call.Kind == kind {
			out = append(out, call)
		}
	}
	return out
}

// CountingParser wraps an annotation parser and counts Parse invocations,
// for memoization assertions.
type CountingParser struct {
	Parser annotation.Parser
	Count  int
}

// Parse delegates to the wrapped parser (the default one when unset).
func (p *CountingParser) Parse(frag *dom.Fragment) (*annotation.Notes, error) {
	p.Count++
	parser := p.Parser
	if parser == nil {
		parser = annotation.New()
	}
	return parser.Parse(frag)
}
