package dom

import (
	"fmt"
	"strings"
)

// NodeType discriminates the node kinds the binding engine understands. The
// tree is deliberately backing-store agnostic: loaders convert richer formats
// (HTML, YAML) into it, and the engine never assumes more than what is here.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Attr is a single name/value attribute on an element node.
type Attr struct {
	Name  string
	Value string
}

// Node is one node in a template or stamped subtree. Text carries the literal
// content for TextNode; Tag and Attrs apply to ElementNode.
type Node struct {
	Type     NodeType
	Tag      string
	Text     string
	Attrs    []Attr
	Children []*Node

	parent     *Node
	styleScope string
	stamped    any
	listeners  map[string][]ListenerFunc
}

// NewElement builds an element node with the provided attributes.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Tag: tag, Attrs: attrs}
}

// NewText builds a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// Append adds child nodes, wiring their parent pointers.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = n
		n.Children = append(n.Children, child)
	}
	return n
}

// Parent returns the enclosing node, or nil at a subtree root.
func (n *Node) Parent() *Node { return n.parent }

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr replaces or adds the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// SetStamped back-tags the node with the template instance that produced it.
func (n *Node) SetStamped(instance any) { n.stamped = instance }

// Stamped returns the template instance the node belongs to, if any.
func (n *Node) Stamped() any { return n.stamped }

// SetStyleScope marks the node as requiring scoped styling under the given
// scope identifier.
func (n *Node) SetStyleScope(scope string) { n.styleScope = scope }

// StyleScope returns the scoped-styling identifier, empty when unscoped.
func (n *Node) StyleScope() string { return n.styleScope }

// Clone returns a deep copy of the node. Runtime state (listeners, stamp
// back-tags, style scope) is not carried over; only structure is.
func (n *Node) Clone() *Node {
	copied := &Node{
		Type: n.Type,
		Tag:  n.Tag,
		Text: n.Text,
	}
	if len(n.Attrs) > 0 {
		copied.Attrs = make([]Attr, len(n.Attrs))
		copy(copied.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		copied.Append(child.Clone())
	}
	return copied
}

// Walk visits the node and its descendants in document (pre-)order. Returning
// an error from fn stops the walk and propagates the error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Fragment is a parentless container of top-level nodes: the unit templates
// are described in and instances are stamped from.
type Fragment struct {
	Children []*Node

	// NoContent is set on stamped subtrees whose originating template carried
	// no annotated content.
	NoContent bool
}

// NewFragment builds a fragment from top-level nodes.
func NewFragment(children ...*Node) *Fragment {
	f := &Fragment{}
	f.Append(children...)
	return f
}

// Append adds top-level nodes to the fragment.
func (f *Fragment) Append(children ...*Node) *Fragment {
	for _, child := range children {
		if child == nil {
			continue
		}
		f.Children = append(f.Children, child)
	}
	return f
}

// Walk visits every node in the fragment in document order.
func (f *Fragment) Walk(fn func(*Node) error) error {
	for _, child := range f.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep structural copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	copied := &Fragment{NoContent: f.NoContent}
	for _, child := range f.Children {
		copied.Children = append(copied.Children, child.Clone())
	}
	return copied
}

// String renders the fragment as indented text, one node per line. Meant for
// diagnostics and CLI output, not for serialization.
func (f *Fragment) String() string {
	var b strings.Builder
	for _, child := range f.Children {
		writeNode(&b, child, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case TextNode:
		fmt.Fprintf(b, "%s%q\n", indent, n.Text)
	default:
		b.WriteString(indent)
		b.WriteString("<")
		b.WriteString(n.Tag)
		for _, attr := range n.Attrs {
			fmt.Fprintf(b, " %s=%q", attr.Name, attr.Value)
		}
		b.WriteString(">\n")
		for _, child := range n.Children {
			writeNode(b, child, depth+1)
		}
	}
}
