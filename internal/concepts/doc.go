// Package concepts implements the independent domain concepts of the fitweek
// backend: Authing, Sessioning, Friending, Posting, Pointing, and Tracking.
//
// Each concept is a small service struct constructed with its repository and
// exposing the operations the HTTP layer composes per request. Concepts never
// touch HTTP types; they take plain arguments keyed by user id and return
// domain values or wrapped sentinel errors from internal/shared.
//
// Tracking is the most involved concept: it owns the weekly task lifecycle
// (create, partial update, completion toggling, reset-and-archive) and the
// difficulty feedback rule that suggests workout adjustments. Its mutations
// are serialized per user with a keyed mutex because the record is stored and
// rewritten as one document.
package concepts
