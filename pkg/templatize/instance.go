package templatize

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/dom"
	"github.com/goliatone/go-templatize/pkg/props"
)

// Instance is one live stamping of a template: an owned value table over the
// shared archetype schema, a stamped subtree, and the bookkeeping that ties
// both back to the templatizing host.
type Instance struct {
	props    *props.Host
	tmpl     *Template
	at       *archetype
	owner    *Templatizer
	rootHost *Templatizer

	root     *dom.Fragment
	nodes    []*dom.Node
	children []*dom.Node
	ready    bool
}

// Stamp builds one live instance from the compiled template. Shadow values
// currently set on the host are merged into the model first, so instances
// always see the latest host values at stamp time even when the model omits
// them. Stamping before Templatize fails fast with ErrNotTemplatized.
func (t *Templatizer) Stamp(model map[string]any) (*Instance, error) {
	if t.ctor == nil {
		return nil, ErrNotTemplatized
	}

	merged := make(map[string]any, len(model)+len(t.ctor.at.parentProps))
	for name, value := range model {
		merged[name] = value
	}
	for prop := range t.ctor.at.parentProps {
		if value, ok := t.host.Get(ParentPrefix + prop); ok {
			merged[prop] = value
		}
	}

	return t.ctor.construct(merged, t)
}

// construct performs the instance build: configure initial values, clone the
// subtree under the host-context stack, marshal annotated nodes and
// listeners, record children, and trigger readiness. Any marshal failure is
// fatal for the whole construction; a partial instance is never returned.
func (c *constructor) construct(model map[string]any, host *Templatizer) (*Instance, error) {
	inst := &Instance{
		tmpl:     c.tmpl,
		at:       c.at,
		owner:    host,
		rootHost: host.RootHost(),
	}

	inst.props = props.NewHost(c.at.schema)
	inst.props.Bind(inst)
	inst.props.SetPathHandler(inst.interceptPath)
	inst.props.Configure(model)

	host.sched.PushHost(host)
	defer host.sched.PopHost()

	inst.root = c.tmpl.Root.Clone()
	inst.root.NoContent = !c.at.notes.HasContent

	scope := fmt.Sprintf("tpl-%d", host.id)
	_ = inst.root.Walk(func(n *dom.Node) error {
		n.SetStyleScope(scope)
		inst.nodes = append(inst.nodes, n)
		return nil
	})

	if err := inst.marshal(host); err != nil {
		return nil, fmt.Errorf("templatize: stamp: %w", err)
	}

	for _, child := range inst.root.Children {
		child.SetStamped(inst)
		inst.children = append(inst.children, child)
	}

	host.instances = append(host.instances, inst)
	inst.ready = true
	return inst, nil
}

// marshal applies the archetype's notes against the cloned subtree: initial
// binding values are resolved onto nodes and annotated listeners attached.
// Failures accumulate so one bad annotation does not hide the rest.
func (inst *Instance) marshal(host *Templatizer) error {
	var errs error
	for i := range inst.at.notes.Items {
		note := &inst.at.notes.Items[i]
		if note.Index < 0 || note.Index >= len(inst.nodes) {
			errs = multierr.Append(errs, fmt.Errorf("note %d: node index %d out of range", i, note.Index))
			continue
		}
		switch note.Kind {
		case annotation.EventListener:
			handler, ok := host.handlers[note.Handler]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("handler %q is not registered", note.Handler))
				continue
			}
			host.Listen(inst, inst.nodes[note.Index], note.Event, handler)
		default:
			inst.applyNote(note)
		}
	}
	return errs
}

// applyNote refreshes one annotated node from the instance's current value
// for the bound path.
func (inst *Instance) applyNote(note *annotation.Note) {
	if note.Index < 0 || note.Index >= len(inst.nodes) {
		return
	}
	value, _ := inst.props.Value(note.Path)
	rendered := note.Prefix + stringify(value) + note.Suffix

	node := inst.nodes[note.Index]
	if note.Kind == annotation.AttrBinding {
		node.SetAttr(note.Attr, rendered)
		return
	}
	node.Text = rendered
}

// interceptPath is the instance-side path notifier: upward reporting always
// goes through the host's instance-path hook, and when the path roots at a
// two-way parent property the change is additionally surfaced on the host
// under the reserved shadow name. One-way roots and forwarded notifications
// only refresh bound nodes.
func (inst *Instance) interceptPath(_ *props.Host, path string, value any, origin props.Origin) bool {
	root := props.Root(path)
	if origin == props.OriginLocal {
		inst.owner.forwardInstancePath(inst, path, value)
		if _, twoWay := inst.at.twoWay[root]; twoWay && inst.pathBindable() {
			inst.owner.host.NotifyPath(ParentPrefix+path, value, props.OriginLocal)
		}
	}
	inst.refreshRoot(root)
	return true
}

func (inst *Instance) pathBindable() bool {
	return inst.tmpl.content != nil && inst.tmpl.content.pathBindable
}

// refreshRoot re-applies every note bound under the given root property.
func (inst *Instance) refreshRoot(root string) {
	for i := range inst.at.notes.Items {
		note := &inst.at.notes.Items[i]
		if note.Kind == annotation.EventListener {
			continue
		}
		if annotation.Root(note.Path) == root {
			inst.applyNote(note)
		}
	}
}

// Get reads a top-level property value.
func (inst *Instance) Get(name string) (any, bool) {
	return inst.props.Get(name)
}

// Value resolves a dotted path against the instance's values.
func (inst *Instance) Value(path string) (any, bool) {
	return inst.props.Value(path)
}

// Set writes a top-level property as a locally originated change, firing the
// archetype's effects (node refresh plus upward forwarding).
func (inst *Instance) Set(name string, value any) {
	inst.props.Set(name, value, props.OriginLocal)
}

// SetPath writes a nested field as a locally originated change.
func (inst *Instance) SetPath(path string, value any) error {
	return inst.props.SetPath(path, value, props.OriginLocal)
}

// Props exposes the instance's property host.
func (inst *Instance) Props() *props.Host { return inst.props }

// Root returns the stamped subtree, ready for insertion by the caller.
func (inst *Instance) Root() *dom.Fragment { return inst.root }

// Children returns the tracked top-level nodes of the stamped subtree. They
// are recorded individually because the fragment's own child list is lost
// once the subtree is inserted elsewhere.
func (inst *Instance) Children() []*dom.Node {
	out := make([]*dom.Node, len(inst.children))
	copy(out, inst.children)
	return out
}

// Owner returns the templatizing host that stamped this instance.
func (inst *Instance) Owner() *Templatizer { return inst.owner }

// RootHost returns the outermost host in the templatizing chain.
func (inst *Instance) RootHost() *Templatizer { return inst.rootHost }

// Template returns the originating template.
func (inst *Instance) Template() *Template { return inst.tmpl }

// Ready reports whether construction completed.
func (inst *Instance) Ready() bool { return inst.ready }

// HasContent reports whether the originating template carried any annotated
// content.
func (inst *Instance) HasContent() bool { return inst.at.notes.HasContent }

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}
