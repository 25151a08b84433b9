package htmlsrc

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// templatePolicy is the sanitizer applied to template markup before parsing.
// Script/style content and native DOM handler attributes are stripped; the
// engine's own `on-*` binding annotations and common structural attributes
// are kept.
func templatePolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()

		p.AllowElements(
			"div", "span", "p", "a", "ul", "ol", "li", "section", "article",
			"header", "footer", "nav", "main", "h1", "h2", "h3", "h4", "h5",
			"h6", "label", "input", "textarea", "select", "option", "button",
			"form", "img", "table", "thead", "tbody", "tr", "td", "th",
			"strong", "em", "small", "pre", "code", "br", "hr",
		)

		p.AllowAttrs(
			"class", "id", "name", "value", "type", "placeholder", "title",
			"href", "src", "alt", "for", "rows", "cols", "disabled",
			"readonly", "checked", "selected", "hidden",
		).Globally()

		// Binding-engine event annotations, not native handlers.
		p.AllowAttrs(
			"on-click", "on-input", "on-change", "on-submit", "on-tap",
			"on-focus", "on-blur", "on-select",
		).Globally()

		policy = p
	})
	return policy
}
