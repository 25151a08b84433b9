package templatize

import "github.com/goliatone/go-templatize/pkg/dom"

// Listen subscribes a handler to an event on one of an instance's nodes.
// The handler is decorated so every dispatched event is attributed to the
// stamping instance through Event.Model before it runs; actual subscription
// is delegated to the root host's listen mechanism, since instances are not
// part of the primary event-scoping tree.
func (t *Templatizer) Listen(inst *Instance, node *dom.Node, event string, handler dom.ListenerFunc) {
	if node == nil || handler == nil {
		return
	}
	decorated := func(ev *dom.Event) {
		ev.Model = inst
		handler(ev)
	}
	t.RootHost().listen(node, event, decorated)
}

func (t *Templatizer) listen(node *dom.Node, event string, handler dom.ListenerFunc) {
	node.Listen(event, handler)
}
