// Package annotation extracts binding expressions from template fragments.
//
// Two binding forms are recognised inside text nodes and attribute values:
// `{{path}}` binds two-way (instance mutations are reported upward) and
// `[[path]]` binds one-way from the host down. Attributes named `on-<event>`
// declare listeners resolved by handler name at stamp time.
package annotation

// Kind discriminates the note variants a parse produces.
type Kind int

const (
	// TextBinding replaces a text node's content from a bound path.
	TextBinding Kind = iota
	// AttrBinding replaces an attribute value from a bound path.
	AttrBinding
	// EventListener attaches a named handler to a node event.
	EventListener
)

// Mode records the declared binding direction.
type Mode int

const (
	// OneWay bindings flow host to instance only.
	OneWay Mode = iota
	// TwoWay bindings additionally report instance mutations upward.
	TwoWay
)

// Note is one parsed annotation. Index addresses the annotated node by its
// position in document order over the whole fragment, so instances stamped
// from a structural clone can resolve the same node again.
type Note struct {
	Kind  Kind
	Index int

	// Path is the bound property path for Text/Attr bindings; Prefix and
	// Suffix hold the literal text around the expression.
	Path   string
	Mode   Mode
	Prefix string
	Suffix string

	// Attr names the annotated attribute for AttrBinding notes.
	Attr string

	// Event and Handler describe EventListener notes.
	Event   string
	Handler string
}

// Notes is the complete parse result for one template fragment. It is cached
// per template by the caller; parsing the same fragment twice is never
// required.
type Notes struct {
	Items []Note

	// ParentProps holds the root segment of every bound path: the property
	// names the template reads that are owned by the templatizing host until
	// declared instance-local.
	ParentProps map[string]struct{}

	// HasContent reports whether the fragment held any nodes at all.
	HasContent bool
}
