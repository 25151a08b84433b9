package props

import "reflect"

// Host owns a property value table and applies the effects of a shared
// Schema on write. Every template instance holds its own Host; the Schema is
// shared across all instances of one compiled program.
type Host struct {
	schema      *Schema
	values      map[string]any
	owner       any
	configuring bool
	pathHandler PathHandler
}

// NewHost builds a host over the shared schema.
func NewHost(schema *Schema) *Host {
	if schema == nil {
		schema = NewSchema()
	}
	return &Host{
		schema: schema,
		values: make(map[string]any),
	}
}

// Bind records the object this host belongs to. Effects resolve it at fire
// time, which keeps effect closures shareable across hosts.
func (h *Host) Bind(owner any) { h.owner = owner }

// Owner returns the bound object.
func (h *Host) Owner() any { return h.owner }

// Schema returns the effect table this host applies.
func (h *Host) Schema() *Schema { return h.schema }

// Get returns the top-level value for name.
func (h *Host) Get(name string) (any, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Set writes a top-level property and fires its effects in installation
// order before returning. Writes carrying a value equal to the current one
// are dropped.
func (h *Host) Set(name string, value any, origin Origin) {
	if old, ok := h.values[name]; ok && equal(old, value) {
		return
	}
	h.values[name] = value
	h.fire(name, name, value, origin, KindFunction)
}

// Refresh re-fires the function effects for name with its current value.
// Used when effects are attached after the value was already set, so the new
// wiring observes the pre-existing value.
func (h *Host) Refresh(name string, origin Origin) {
	if v, ok := h.values[name]; ok {
		h.fire(name, name, v, origin, KindFunction)
	}
}

// Configure bulk-sets initial values without firing effects. The configuring
// state is released on every exit path; callers apply initial wiring
// explicitly afterwards.
func (h *Host) Configure(model map[string]any) {
	h.configuring = true
	defer func() { h.configuring = false }()
	for name, value := range model {
		h.values[name] = value
	}
}

// Configuring reports whether the host is inside its initial bulk-set.
func (h *Host) Configuring() bool { return h.configuring }

func (h *Host) fire(prop, name string, value any, origin Origin, kind Kind) {
	if h.configuring {
		return
	}
	for _, e := range h.schema.effects[prop] {
		if e.kind != kind {
			continue
		}
		e.fn(h, name, value, origin)
	}
}

// equal is a conservative comparability-aware equality check: incomparable
// or differently-typed values are treated as changed.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
