package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ent(id string, extra ...string) Entity {
	e := Entity{"id": id}
	for i := 0; i+1 < len(extra); i += 2 {
		e[extra[i]] = extra[i+1]
	}
	return e
}

func ids(list []Entity) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, entityID(e))
	}
	return out
}

func TestApplyCreated(t *testing.T) {
	list := ApplyCreated(nil, ent("a"))
	list = ApplyCreated(list, ent("b"))
	assert.Equal(t, []string{"a", "b"}, ids(list))

	// Sự kiện create phát lại không nhân đôi, payload mới thắng.
	list = ApplyCreated(list, ent("a", "name", "updated"))
	assert.Equal(t, []string{"a", "b"}, ids(list))
	assert.Equal(t, "updated", list[0]["name"])
}

func TestApplyUpdated(t *testing.T) {
	list := []Entity{ent("a", "name", "old"), ent("b"), ent("c")}

	t.Run("replaces in place without changing order or length", func(t *testing.T) {
		updated := ApplyUpdated(list, ent("b", "name", "new"))
		assert.Equal(t, []string{"a", "b", "c"}, ids(updated))
		assert.Len(t, updated, 3)
		assert.Equal(t, "new", updated[1]["name"])
	})

	t.Run("unknown id is appended", func(t *testing.T) {
		updated := ApplyUpdated(list, ent("d"))
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(updated))
	})

	t.Run("input list is not mutated", func(t *testing.T) {
		_ = ApplyUpdated(list, ent("a", "name", "changed"))
		assert.Equal(t, "old", list[0]["name"])
	})
}

func TestApplyDeleted(t *testing.T) {
	list := []Entity{ent("a"), ent("b"), ent("c")}

	deleted := ApplyDeleted(list, "b")
	assert.Equal(t, []string{"a", "c"}, ids(deleted))

	// Xóa id không tồn tại là no-op.
	same := ApplyDeleted(deleted, "zzz")
	assert.Equal(t, []string{"a", "c"}, ids(same))

	// Xóa lần thứ hai cũng là no-op.
	again := ApplyDeleted(same, "b")
	assert.Equal(t, []string{"a", "c"}, ids(again))
}

func TestLedgerApplyAndSnapshot(t *testing.T) {
	type cage struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	l := NewLedger()
	l.Apply("cages", opCreate, cage{ID: "CAGE-1", Name: "Lồng 1"})
	l.Apply("cages", opCreate, cage{ID: "CAGE-2", Name: "Lồng 2"})
	l.Apply("cages", opUpdate, cage{ID: "CAGE-1", Name: "Lồng 1B"})
	l.Apply("cages", opDelete, DeletePayload{ID: "CAGE-2"})

	snapshot := l.Snapshot("cages")
	require.Len(t, snapshot, 1)
	assert.Equal(t, "CAGE-1", snapshot[0]["id"])
	assert.Equal(t, "Lồng 1B", snapshot[0]["name"])

	// Snapshot là bản sao; sửa nó không đụng vào ledger.
	snapshot[0]["name"] = "mutated"
	assert.Equal(t, "Lồng 1B", l.Snapshot("cages")[0]["name"])

	all := l.Snapshots()
	assert.Contains(t, all, "cages")
	all["cages"][0]["name"] = "mutated-again"
	assert.Equal(t, "Lồng 1B", l.Snapshot("cages")[0]["name"])

	// Collection chưa từng có sự kiện trả về rỗng.
	assert.Empty(t, l.Snapshot("feeds"))
}

func TestEventBindingsCoverDeclaredEvents(t *testing.T) {
	for _, event := range []string{
		EventRequestCreated, EventRequestStatusChanged, EventRequestItemUpdated,
		EventCageCreated, EventFeedUpdated, EventMedicationDeleted,
		EventLabBoxCreated, EventEmployeeUpdated, EventRequisitionCreated,
	} {
		_, ok := eventBindings[event]
		assert.True(t, ok, "event %s has no ledger binding", event)
	}

	// Comment không phải là một danh sách entity trong ledger.
	_, ok := eventBindings[EventRequisitionCommentAdded]
	assert.False(t, ok)
}
