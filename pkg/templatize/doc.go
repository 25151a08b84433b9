// Package templatize compiles annotated template fragments into shared
// binding programs ("archetypes") and stamps independent live instances of
// them.
//
// A Templatizer is the coordinating host: Templatize compiles (or reuses)
// the archetype for a template, Stamp produces one live instance. Properties
// the template reads but the host owns ("parent properties") are kept in
// sync host → instance through reserved shadow properties on the host;
// properties mutated inside an instance that are not declared instance-local
// are reported instance → host. Nested ("path") mutations cross the boundary
// in both directions. Every write carries an explicit provenance tag so a
// forwarded value is never echoed back as a fresh change.
//
// Property propagation is synchronous, re-entrant, and single-threaded by
// contract. The only deferred machinery is the Scheduler, which coalesces
// refresh requests into one debounced batch per host.
package templatize
