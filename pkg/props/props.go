// Package props is the accessor/effect runtime underneath the binding
// engine: a shared effect table ("schema") describing which properties notify
// and what happens when they change, and per-host value tables that apply the
// shared effects on write.
//
// Propagation is synchronous and re-entrant. The only loop damping is the
// explicit Origin tag threaded through every set and notify call; a write
// tagged OriginForwarded must never be echoed back as a fresh local change.
package props

// Origin records the provenance of a property write.
type Origin int

const (
	// OriginLocal marks a write initiated on the host itself.
	OriginLocal Origin = iota
	// OriginForwarded marks a write pushed down from above; forwarding
	// effects suppress themselves for these.
	OriginForwarded
)

func (o Origin) String() string {
	if o == OriginForwarded {
		return "forwarded"
	}
	return "local"
}

// Kind discriminates effect behaviour.
type Kind int

const (
	// KindFunction effects fire on direct property writes.
	KindFunction Kind = iota
	// KindNotify effects fire on path-level change notifications rooted at
	// the property.
	KindNotify
)

// EffectFunc is an installed side effect. For KindFunction, name is the
// property; for KindNotify, name is the full notified path.
type EffectFunc func(h *Host, name string, value any, origin Origin)

type effect struct {
	kind Kind
	fn   EffectFunc
}

// Schema is the shared accessor/effect table. One Schema backs every host
// stamped from the same compiled program; it is populated during compilation
// and must not be mutated afterwards.
type Schema struct {
	effects map[string][]effect
	names   []string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{effects: make(map[string][]effect)}
}

// Install declares a notifying accessor for the named property. Installing
// the same name twice is a no-op.
func (s *Schema) Install(name string) {
	if _, ok := s.effects[name]; ok {
		return
	}
	s.effects[name] = nil
	s.names = append(s.names, name)
}

// Installed reports whether the named accessor exists.
func (s *Schema) Installed(name string) bool {
	_, ok := s.effects[name]
	return ok
}

// Names returns the installed accessor names in installation order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// AddEffect attaches a side effect to the named property, installing the
// accessor if needed. Effects fire in attachment order.
func (s *Schema) AddEffect(name string, kind Kind, fn EffectFunc) {
	if fn == nil {
		return
	}
	s.Install(name)
	s.effects[name] = append(s.effects[name], effect{kind: kind, fn: fn})
}

// CopyEffects copies the accessor and effect list for name from another
// schema, appending after any effects already attached here.
func (s *Schema) CopyEffects(name string, from *Schema) {
	if from == nil {
		return
	}
	src, ok := from.effects[name]
	if !ok {
		return
	}
	s.Install(name)
	s.effects[name] = append(s.effects[name], src...)
}
