package templatize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/props"
)

// ParentPrefix is the reserved shadow-property prefix on the templatizing
// host. Setting `parent:<prop>` on the host is what pushes a value down into
// every live instance.
const ParentPrefix = "parent:"

// ErrNotTemplatized is returned by Stamp when no template has been compiled
// for the templatizer yet.
var ErrNotTemplatized = errors.New("templatize: stamp before templatize")

// Hooks are the host-side extension points. Parent hooks receive downward
// updates; instance hooks observe upward ones. Any nil hook falls back to
// the built-in behaviour: parent hooks broadcast to live instances, instance
// hooks do nothing.
type Hooks struct {
	ForwardParentProp   func(prop string, value any)
	ForwardParentPath   func(path string, value any)
	ForwardInstanceProp func(inst *Instance, prop string, value any)
	ForwardInstancePath func(inst *Instance, path string, value any)
	ShowHideChildren    func(hidden bool)
}

// Option customises a Templatizer.
type Option func(*Templatizer)

// WithParser injects a custom annotation parser.
func WithParser(parser annotation.Parser) Option {
	return func(t *Templatizer) {
		t.parser = parser
	}
}

// WithScheduler shares an existing scheduler, coalescing debounced refreshes
// across every templatizer attached to it.
func WithScheduler(sched *Scheduler) Option {
	return func(t *Templatizer) {
		t.sched = sched
	}
}

// WithDelay sets the debounce window used when the templatizer creates its
// own scheduler. Ignored when a scheduler is shared or inherited.
func WithDelay(delay time.Duration) Option {
	return func(t *Templatizer) {
		t.delay = delay
	}
}

// WithHost nests this templatizer under an enclosing one. Nested
// templatizers inherit the scheduler and resolve event scoping through the
// outermost host in the chain.
func WithHost(parent *Templatizer) Option {
	return func(t *Templatizer) {
		t.parent = parent
	}
}

// WithInstanceProps declares property names that are instance-local: their
// values are supplied per stamp and never forwarded to the host.
func WithInstanceProps(names ...string) Option {
	return func(t *Templatizer) {
		for _, name := range names {
			t.instanceProps[name] = struct{}{}
		}
	}
}

// WithHooks installs the host-side forwarding hooks.
func WithHooks(hooks Hooks) Option {
	return func(t *Templatizer) {
		t.hooks = hooks
	}
}

// WithHandler registers a named event handler resolvable from `on-*`
// template annotations.
func WithHandler(name string, fn dom.ListenerFunc) Option {
	return func(t *Templatizer) {
		t.handlers[name] = fn
	}
}

// WithoutParentForwarding opts the host out of parent-property bridging
// entirely. Bridging is then silently skipped, not an error.
func WithoutParentForwarding() Option {
	return func(t *Templatizer) {
		t.bridging = false
	}
}

// Templatizer is the templatizing host: it compiles templates, stamps
// instances, holds the parent-property shadows, and coordinates forwarding
// in both directions.
type Templatizer struct {
	id            int64
	parser        annotation.Parser
	sched         *Scheduler
	delay         time.Duration
	host          *props.Host
	hooks         Hooks
	bridging      bool
	instanceProps map[string]struct{}
	handlers      map[string]dom.ListenerFunc
	parent        *Templatizer
	pathObservers []func(path string, value any)

	tmpl      *Template
	ctor      *constructor
	instances []*Instance
	hidden    bool
}

// New constructs a Templatizer. A templatizer created while another host is
// stamping (a nested templatization) automatically nests under it when no
// explicit parent is given.
func New(opts ...Option) *Templatizer {
	t := &Templatizer{
		bridging:      true,
		instanceProps: make(map[string]struct{}),
		handlers:      make(map[string]dom.ListenerFunc),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(t)
	}

	if t.parent == nil && t.sched != nil {
		t.parent = t.sched.CurrentHost()
	}
	if t.sched == nil {
		if t.parent != nil {
			t.sched = t.parent.sched
		} else {
			t.sched = NewScheduler(t.delay)
		}
	}
	if t.parser == nil {
		t.parser = annotation.New()
	}

	t.id = t.sched.NextID()
	t.host = props.NewHost(props.NewSchema())
	t.host.Bind(t)
	t.host.SetPathHandler(t.interceptHostPath)
	return t
}

// ID returns the scheduler-assigned host id.
func (t *Templatizer) ID() int64 { return t.id }

// Host exposes the templatizing host's own property table, including the
// parent-property shadows.
func (t *Templatizer) Host() *props.Host { return t.host }

// Scheduler returns the flush scheduler this host debounces through.
func (t *Templatizer) Scheduler() *Scheduler { return t.sched }

// RootHost resolves the outermost templatizer in a chain of nested
// templatizations, used for event and style scoping.
func (t *Templatizer) RootHost() *Templatizer {
	root := t
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Instances returns the live instances stamped from this host.
func (t *Templatizer) Instances() []*Instance {
	out := make([]*Instance, len(t.instances))
	copy(out, t.instances)
	return out
}

// Set writes a parent property on the host. The value lands on the reserved
// shadow name and, once the template is compiled, propagates to every live
// instance.
func (t *Templatizer) Set(prop string, value any) {
	t.host.Set(ParentPrefix+prop, value, props.OriginLocal)
}

// Get reads the current parent-property shadow value.
func (t *Templatizer) Get(prop string) (any, bool) {
	return t.host.Get(ParentPrefix + prop)
}

// SetPath writes a nested field under a parent property and propagates the
// change to every live instance.
func (t *Templatizer) SetPath(path string, value any) error {
	return t.host.SetPath(ParentPrefix+path, value, props.OriginLocal)
}

// ObservePath registers an observer for path-level changes surfacing on the
// host's shadow properties, including nested mutations reported upward by
// instances.
func (t *Templatizer) ObservePath(fn func(path string, value any)) {
	if fn != nil {
		t.pathObservers = append(t.pathObservers, fn)
	}
}

// RegisterHandler adds a named event handler after construction.
func (t *Templatizer) RegisterHandler(name string, fn dom.ListenerFunc) {
	t.handlers[name] = fn
}

// SetHidden toggles host-level visibility. The ShowHideChildren hook runs on
// each toggle; without one, the `hidden` attribute is set or cleared on every
// stamped top-level element.
func (t *Templatizer) SetHidden(hidden bool) {
	if t.hidden == hidden {
		return
	}
	t.hidden = hidden
	if t.hooks.ShowHideChildren != nil {
		t.hooks.ShowHideChildren(hidden)
		return
	}
	for _, inst := range t.instances {
		for _, child := range inst.children {
			if child.Type != dom.ElementNode {
				continue
			}
			if hidden {
				child.SetAttr("hidden", "")
			} else {
				child.RemoveAttr("hidden")
			}
		}
	}
}

// Hidden reports the host-level visibility flag.
func (t *Templatizer) Hidden() bool { return t.hidden }

// Debounce coalesces repeated refresh requests from this host into a single
// batched callback; the latest callback wins.
func (t *Templatizer) Debounce(fn func()) {
	t.sched.Debounce(t.id, fn)
}

// Flush forces the shared scheduler to drain immediately.
func (t *Templatizer) Flush() {
	t.sched.Flush()
}

// Templatize compiles the template's binding program, memoizing the result
// on the template. Repeat calls reuse the cached constructor but still rebind
// the parent-property shadow accessors onto this host, so a shared template
// works across several templatizing hosts.
func (t *Templatizer) Templatize(tmpl *Template) error {
	if tmpl == nil {
		return fmt.Errorf("templatize: template is required")
	}

	c := tmpl.ensureContent()
	if c.ctor != nil {
		t.tmpl = tmpl
		t.ctor = c.ctor
		t.prepParentProperties(c)
		return nil
	}

	notes := c.notes
	if notes == nil {
		parsed, err := t.parser.Parse(tmpl.Root)
		if err != nil {
			return fmt.Errorf("templatize: parse annotations: %w", err)
		}
		notes = parsed
		c.notes = parsed
	}

	at, err := t.compile(notes)
	if err != nil {
		return err
	}

	c.ctor = &constructor{at: at, tmpl: tmpl}
	t.tmpl = tmpl
	t.ctor = c.ctor
	t.prepParentProperties(c)
	return nil
}

// interceptHostPath reroutes path notifications on the host: a notification
// under the reserved shadow prefix is stripped and handed to the parent-path
// forwarding hook before normal propagation continues.
func (t *Templatizer) interceptHostPath(h *props.Host, path string, value any, origin props.Origin) bool {
	if strings.HasPrefix(path, ParentPrefix) && origin == props.OriginLocal {
		t.forwardParentPath(path[len(ParentPrefix):], value)
	}
	return false
}
