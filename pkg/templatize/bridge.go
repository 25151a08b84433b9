package templatize

import "github.com/goliatone/go-templatize/pkg/props"

// prepParentProperties rebinds the archetype's shared shadow accessors onto
// this host. It runs on every Templatize call, compiled or cached: the
// constructor is per-template but shadow wiring is per-host, so a template
// shared across hosts re-binds each time. Values already set on the host
// survive the install and are re-applied through the new wiring, pushing
// them down the freshly attached forwarding effects.
func (t *Templatizer) prepParentProperties(c *content) {
	if !t.bridging {
		return
	}
	c.pathBindable = true

	at := t.ctor.at
	schema := t.host.Schema()
	for _, shadow := range at.parentSchema.Names() {
		if schema.Installed(shadow) {
			continue
		}
		schema.CopyEffects(shadow, at.parentSchema)
		t.host.Refresh(shadow, props.OriginLocal)
	}
}

// forwardParentProp carries a shadow-property change downward. A
// caller-supplied hook replaces the default broadcast to every live
// instance.
func (t *Templatizer) forwardParentProp(prop string, value any) {
	if t.hooks.ForwardParentProp != nil {
		t.hooks.ForwardParentProp(prop, value)
		return
	}
	t.BroadcastProp(prop, value)
}

// forwardParentPath carries a nested shadow change downward, stripped of the
// shadow prefix.
func (t *Templatizer) forwardParentPath(path string, value any) {
	if !t.bridging {
		return
	}
	if t.hooks.ForwardParentPath != nil {
		t.hooks.ForwardParentPath(path, value)
		return
	}
	t.BroadcastPath(path, value)
}

// forwardInstanceProp reports an upward instance change. Optional: without a
// hook it is a no-op.
func (t *Templatizer) forwardInstanceProp(inst *Instance, prop string, value any) {
	if t.hooks.ForwardInstanceProp != nil {
		t.hooks.ForwardInstanceProp(inst, prop, value)
	}
}

// forwardInstancePath reports an upward nested change. Optional.
func (t *Templatizer) forwardInstancePath(inst *Instance, path string, value any) {
	if t.hooks.ForwardInstancePath != nil {
		t.hooks.ForwardInstancePath(inst, path, value)
	}
}

// BroadcastProp applies a property value to every live instance as a
// forwarded write. Custom ForwardParentProp hooks delegate here to keep the
// default downward flow while observing it.
func (t *Templatizer) BroadcastProp(prop string, value any) {
	for _, inst := range t.instances {
		inst.props.Set(prop, value, props.OriginForwarded)
	}
}

// BroadcastPath applies a nested change to every live instance as a
// forwarded write. Instances that do not hold the path yet are skipped.
func (t *Templatizer) BroadcastPath(path string, value any) {
	for _, inst := range t.instances {
		// Nested containers are shared by reference, so this mostly
		// re-notifies; instances with a detached model simply miss the path.
		_ = inst.props.SetPath(path, value, props.OriginForwarded)
	}
}
