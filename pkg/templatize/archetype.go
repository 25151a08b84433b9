package templatize

import (
	"github.com/goliatone/go-templatize/pkg/annotation"
	"github.com/goliatone/go-templatize/pkg/props"
)

// archetype is the compiled binding program for one template: the shared
// instance-side effect schema, the shared shadow schema mirrored onto
// templatizing hosts, and the parsed notes. Exactly one archetype exists per
// distinct template; instances reference it, never copy it.
type archetype struct {
	notes        *annotation.Notes
	parentProps  map[string]struct{}
	twoWay       map[string]struct{}
	schema       *props.Schema
	parentSchema *props.Schema
}

// constructor pairs an archetype with its originating template. It is cached
// on the template's content record and shared by every templatizing host.
type constructor struct {
	at   *archetype
	tmpl *Template
}

// compile builds the archetype: accessors for every bound property, node
// binding effects, and the forwarding effects that carry writes across the
// host/instance boundary. Instance-local names are removed from the parent
// set here, at first compile. Upward forwarding is only installed for parent
// properties that carry at least one two-way note; `[[expr]]`-only properties
// flow host to instance and never back.
func (t *Templatizer) compile(notes *annotation.Notes) (*archetype, error) {
	at := &archetype{
		notes:        notes,
		parentProps:  make(map[string]struct{}),
		twoWay:       make(map[string]struct{}),
		schema:       props.NewSchema(),
		parentSchema: props.NewSchema(),
	}

	for prop := range notes.ParentProps {
		if _, local := t.instanceProps[prop]; local {
			continue
		}
		at.parentProps[prop] = struct{}{}
	}

	for i := range notes.Items {
		note := &notes.Items[i]
		if note.Kind == annotation.EventListener || note.Mode != annotation.TwoWay {
			continue
		}
		root := annotation.Root(note.Path)
		if _, parent := at.parentProps[root]; parent {
			at.twoWay[root] = struct{}{}
		}
	}

	for prop := range at.parentProps {
		at.schema.Install(prop)
	}
	for prop := range t.instanceProps {
		at.schema.Install(prop)
	}

	for i := range notes.Items {
		note := &notes.Items[i]
		if note.Kind == annotation.EventListener {
			continue
		}
		at.schema.AddEffect(annotation.Root(note.Path), props.KindFunction, nodeBindingEffect(note))
	}

	for prop := range at.twoWay {
		at.schema.AddEffect(prop, props.KindFunction, forwardToHostShadow(prop))
	}
	for prop := range t.instanceProps {
		at.schema.AddEffect(prop, props.KindFunction, forwardInstanceToHost(prop))
	}

	for prop := range at.parentProps {
		shadow := ParentPrefix + prop
		at.parentSchema.AddEffect(shadow, props.KindFunction, forwardToTemplateHook(prop))
		at.parentSchema.AddEffect(shadow, props.KindNotify, notifyShadowPath())
	}

	return at, nil
}

// nodeBindingEffect refreshes the annotated node from the instance's current
// value for the bound path. The note is shared; the concrete node resolves
// through the firing host's instance at effect time.
func nodeBindingEffect(note *annotation.Note) props.EffectFunc {
	return func(h *props.Host, _ string, _ any, _ props.Origin) {
		if inst, ok := h.Owner().(*Instance); ok {
			inst.applyNote(note)
		}
	}
}

// forwardToHostShadow reports an instance-originated parent-property change
// upward by writing the reserved shadow name on the templatizing host.
// Forwarded writes are suppressed to keep propagation one-directional per
// write.
func forwardToHostShadow(prop string) props.EffectFunc {
	return func(h *props.Host, _ string, value any, origin props.Origin) {
		if origin == props.OriginForwarded {
			return
		}
		if inst, ok := h.Owner().(*Instance); ok {
			inst.owner.host.Set(ParentPrefix+prop, value, props.OriginLocal)
		}
	}
}

// forwardToTemplateHook pushes a shadow-property change down through the
// host's parent-prop forwarding hook.
func forwardToTemplateHook(prop string) props.EffectFunc {
	return func(h *props.Host, _ string, value any, _ props.Origin) {
		if owner, ok := h.Owner().(*Templatizer); ok {
			owner.forwardParentProp(prop, value)
		}
	}
}

// forwardInstanceToHost reports an instance-local property change to the
// host's instance observer hook.
func forwardInstanceToHost(prop string) props.EffectFunc {
	return func(h *props.Host, _ string, value any, origin props.Origin) {
		if origin == props.OriginForwarded {
			return
		}
		if inst, ok := h.Owner().(*Instance); ok {
			inst.owner.forwardInstanceProp(inst, prop, value)
		}
	}
}

// notifyShadowPath surfaces path-level changes on a shadow property to the
// host's registered path observers.
func notifyShadowPath() props.EffectFunc {
	return func(h *props.Host, path string, value any, _ props.Origin) {
		owner, ok := h.Owner().(*Templatizer)
		if !ok {
			return
		}
		for _, fn := range owner.pathObservers {
			fn(path, value)
		}
	}
}
