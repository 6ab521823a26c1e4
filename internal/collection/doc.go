// Package collection holds the canonical in-memory book collection and keeps
// every reading list's embedded book copies consistent with it.
//
// Each mutating operation first calls the storage gateway and only on success
// applies its effect to in-memory state. The state lock is never held across
// a gateway call, so concurrent requests may complete in any order; every
// completion locates what it changes by ID, never by position.
package collection
