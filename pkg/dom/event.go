package dom

// Event is dispatched through stamped subtrees. Model carries the template
// instance the event originated in; the binding engine sets it before any
// handler runs so handlers can always attribute the firing instance.
type Event struct {
	Type   string
	Target *Node
	Model  any
	Detail any

	stopped bool
}

// StopPropagation prevents the event from bubbling further up the tree.
func (e *Event) StopPropagation() { e.stopped = true }

// ListenerFunc handles a dispatched event.
type ListenerFunc func(*Event)

// Listen registers a handler for the named event on this node.
func (n *Node) Listen(event string, fn ListenerFunc) {
	if fn == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]ListenerFunc)
	}
	n.listeners[event] = append(n.listeners[event], fn)
}

// Dispatch delivers the event to this node's listeners and bubbles it through
// ancestor nodes until stopped. Target defaults to the dispatching node.
func (n *Node) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = n
	}
	for node := n; node != nil; node = node.parent {
		for _, fn := range node.listeners[ev.Type] {
			fn(ev)
			if ev.stopped {
				return
			}
		}
	}
}
