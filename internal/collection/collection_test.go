package collection_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markoswell/optivest/internal/collection"
)

type record struct {
	id   uuid.UUID
	name string
}

func (r *record) RecordID() uuid.UUID { return r.id }

func newRecords(n int) []*record {
	out := make([]*record, n)
	for i := range out {
		out[i] = &record{id: uuid.New(), name: string(rune('a' + i))}
	}

	return out
}

func TestPrepend(t *testing.T) {
	col := newRecords(3)
	created := &record{id: uuid.New(), name: "new"}

	got := collection.Prepend(col, created)

	require.Len(t, got, 4)
	assert.Same(t, created, got[0])
	assert.Equal(t, col, got[1:])
	assert.Len(t, col, 3, "input collection must not be mutated")
}

func TestReplace(t *testing.T) {
	col := newRecords(3)
	updated := &record{id: col[1].id, name: "renamed"}

	got := collection.Replace(col, updated)

	require.Len(t, got, 3)
	assert.Same(t, col[0], got[0], "unaffected elements keep their identity")
	assert.Same(t, updated, got[1])
	assert.Same(t, col[2], got[2])
	assert.Equal(t, "b", col[1].name, "input collection must not be mutated")
}

func TestReplace_UnknownIDLeavesCollectionEqual(t *testing.T) {
	col := newRecords(2)
	stranger := &record{id: uuid.New()}

	got := collection.Replace(col, stranger)

	assert.Equal(t, col, got)
}

func TestRemove(t *testing.T) {
	col := newRecords(3)

	got := collection.Remove(col, col[1].id)

	require.Len(t, got, 2)
	assert.Same(t, col[0], got[0])
	assert.Same(t, col[2], got[1])

	for _, r := range got {
		assert.NotEqual(t, col[1].id, r.RecordID())
	}
}

func TestReconcile(t *testing.T) {
	col := newRecords(3)

	t.Run("Create", func(t *testing.T) {
		created := &record{id: uuid.New()}
		got := collection.Reconcile(col, collection.MutationCreate, created)
		require.Len(t, got, 4)
		assert.Same(t, created, got[0])
	})

	t.Run("Update", func(t *testing.T) {
		updated := &record{id: col[0].id, name: "x"}
		got := collection.Reconcile(col, collection.MutationUpdate, updated)
		require.Len(t, got, 3)
		assert.Same(t, updated, got[0])
	})

	t.Run("Delete", func(t *testing.T) {
		got := collection.Reconcile(col, collection.MutationDelete, &record{id: col[1].id})
		require.Len(t, got, 2)
		assert.Same(t, col[0], got[0])
		assert.Same(t, col[2], got[1])
	})
}
