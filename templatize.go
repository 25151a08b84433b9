package templatize

import (
	"github.com/goliatone/go-templatize/internal/htmlsrc"
	"github.com/goliatone/go-templatize/internal/yamlsrc"
	core "github.com/goliatone/go-templatize/pkg/templatize"
)

// Template aliases the core template type for root-package callers.
type Template = core.Template

// Templatizer aliases the core templatizing host.
type Templatizer = core.Templatizer

// Instance aliases a stamped template instance.
type Instance = core.Instance

// Hooks aliases the host-side forwarding hooks.
type Hooks = core.Hooks

// Option aliases templatizer construction options.
type Option = core.Option

// Option constructors, re-exported so root-package callers never need the
// core import.
var (
	WithParser              = core.WithParser
	WithScheduler           = core.WithScheduler
	WithDelay               = core.WithDelay
	WithHost                = core.WithHost
	WithInstanceProps       = core.WithInstanceProps
	WithHooks               = core.WithHooks
	WithHandler             = core.WithHandler
	WithoutParentForwarding = core.WithoutParentForwarding
)

// New constructs a templatizing host; see pkg/templatize for options.
func New(options ...core.Option) *core.Templatizer {
	return core.New(options...)
}

// LoadHTML parses sanitized HTML fragment markup into a template.
func LoadHTML(markup string) (*core.Template, error) {
	return htmlsrc.Load(markup)
}

// LoadYAML parses a YAML template document into a template.
func LoadYAML(data []byte) (*core.Template, error) {
	return yamlsrc.Load(data)
}

// StampHTML compiles fragment markup and stamps one instance in a single
// call: the simplest entry point for callers that just want a live instance
// from markup and a model.
func StampHTML(markup string, model map[string]any, options ...core.Option) (*core.Instance, error) {
	tmpl, err := htmlsrc.Load(markup)
	if err != nil {
		return nil, err
	}
	host := core.New(options...)
	if err := host.Templatize(tmpl); err != nil {
		return nil, err
	}
	return host.Stamp(model)
}
