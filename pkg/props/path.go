package props

import (
	"fmt"
	"strings"
)

// PathHandler intercepts path-level change notifications on a host. A true
// return swallows the notification; false continues default propagation
// (notify effects attached to the path's root property).
type PathHandler func(h *Host, path string, value any, origin Origin) bool

// SetPathHandler installs the host's path interception hook.
func (h *Host) SetPathHandler(fn PathHandler) { h.pathHandler = fn }

// Root returns the path segment before the first separator.
func Root(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// Value resolves a dotted path against the host's values. Nested segments
// traverse map[string]any containers.
func (h *Host) Value(path string) (any, bool) {
	root := Root(path)
	current, ok := h.values[root]
	if !ok {
		return nil, false
	}
	if root == path {
		return current, true
	}
	for _, segment := range strings.Split(path[len(root)+1:], ".") {
		container, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = container[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath writes a nested field and notifies the change. A path without a
// separator degrades to Set. Unlike Set, an equal value still notifies:
// nested containers are shared by reference across hosts, so the leaf may
// already hold the value while observers have not seen it yet.
func (h *Host) SetPath(path string, value any, origin Origin) error {
	root := Root(path)
	if root == path {
		h.Set(path, value, origin)
		return nil
	}

	current, ok := h.values[root]
	if !ok {
		return fmt.Errorf("props: path %q: property %q is not set", path, root)
	}

	segments := strings.Split(path[len(root)+1:], ".")
	for _, segment := range segments[:len(segments)-1] {
		container, ok := current.(map[string]any)
		if !ok {
			return fmt.Errorf("props: path %q: segment %q is not a map", path, segment)
		}
		current, ok = container[segment]
		if !ok {
			return fmt.Errorf("props: path %q: segment %q is not set", path, segment)
		}
	}

	leaf, ok := current.(map[string]any)
	if !ok {
		return fmt.Errorf("props: path %q does not resolve to a map field", path)
	}
	leaf[segments[len(segments)-1]] = value

	h.NotifyPath(path, value, origin)
	return nil
}

// NotifyPath announces a nested change. The installed path handler may
// intercept it; otherwise notify effects attached to the root property fire
// with the full path as their name.
func (h *Host) NotifyPath(path string, value any, origin Origin) {
	if h.pathHandler != nil && h.pathHandler(h, path, value, origin) {
		return
	}
	h.fire(Root(path), path, value, origin, KindNotify)
}
