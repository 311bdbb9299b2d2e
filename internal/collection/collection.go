// Package collection reconciles in-memory record lists against the
// result of a confirmed server mutation. Every helper returns a fresh
// slice so existing readers of the old one are never affected.
package collection

import "github.com/google/uuid"

// Identifiable is any record with a stable unique identifier.
type Identifiable interface {
	RecordID() uuid.UUID
}

// Mutation is the kind of change a collection is reconciled with.
type Mutation int

const (
	MutationCreate Mutation = iota
	MutationUpdate
	MutationDelete
)

// Reconcile applies one mutation result to col and returns the new
// collection. Creates prepend, updates replace by id, deletes remove
// by id. Unaffected elements keep their order.
func Reconcile[T Identifiable](col []T, kind Mutation, rec T) []T {
	switch kind {
	case MutationCreate:
		return Prepend(col, rec)
	case MutationUpdate:
		return Replace(col, rec)
	case MutationDelete:
		return Remove(col, rec.RecordID())
	}

	return col
}

// Prepend returns a new collection with rec as the first element.
func Prepend[T Identifiable](col []T, rec T) []T {
	out := make([]T, 0, len(col)+1)
	out = append(out, rec)

	return append(out, col...)
}

// Replace returns a new collection where the element matching rec's id
// is swapped for rec. All other elements are carried over untouched.
func Replace[T Identifiable](col []T, rec T) []T {
	out := make([]T, len(col))
	for i, item := range col {
		if item.RecordID() == rec.RecordID() {
			out[i] = rec
			continue
		}

		out[i] = item
	}

	return out
}

// Remove returns a new collection without the element matching id.
func Remove[T Identifiable](col []T, id uuid.UUID) []T {
	out := make([]T, 0, len(col))
	for _, item := range col {
		if item.RecordID() == id {
			continue
		}

		out = append(out, item)
	}

	return out
}
