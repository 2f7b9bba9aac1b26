// server/internal/socket/ledger.go
package socket

import (
	"encoding/json"
	"sync"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Entity là một entity đã JSON-hóa, khớp bằng trường "id".
type Entity map[string]interface{}

func entityID(e Entity) string {
	id, _ := e["id"].(string)
	return id
}

// ApplyCreated chèn entity vào cuối danh sách (thứ tự chèn được giữ nguyên).
// Nếu id đã tồn tại thì thay thế tại chỗ, tránh nhân đôi khi sự kiện phát lại.
func ApplyCreated(list []Entity, e Entity) []Entity {
	id := entityID(e)
	for i := range list {
		if entityID(list[i]) == id {
			out := make([]Entity, len(list))
			copy(out, list)
			out[i] = e
			return out
		}
	}
	out := make([]Entity, len(list), len(list)+1)
	copy(out, list)
	return append(out, e)
}

// ApplyUpdated thay thế entity cùng id tại đúng vị trí cũ, không đổi thứ tự,
// không nhân đôi. Id chưa có trong danh sách thì chèn vào cuối.
func ApplyUpdated(list []Entity, e Entity) []Entity {
	id := entityID(e)
	for i := range list {
		if entityID(list[i]) == id {
			out := make([]Entity, len(list))
			copy(out, list)
			out[i] = e
			return out
		}
	}
	out := make([]Entity, len(list), len(list)+1)
	copy(out, list)
	return append(out, e)
}

// ApplyDeleted lọc bỏ entity theo id. Id không tồn tại là no-op.
func ApplyDeleted(list []Entity, id string) []Entity {
	out := make([]Entity, 0, len(list))
	for _, e := range list {
		if entityID(e) == id {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Ledger giữ bản chụp trong bộ nhớ của các danh sách entity, được cập nhật
// qua các reducer thuần ở trên mỗi khi hub phát sự kiện.
type Ledger struct {
	mu    sync.RWMutex
	lists map[string][]Entity
}

func NewLedger() *Ledger {
	return &Ledger{lists: make(map[string][]Entity)}
}

// Apply đưa một payload sự kiện vào danh sách của collection tương ứng.
// Payload được ép về Entity qua JSON để khớp đúng hình dạng client nhìn thấy.
func (l *Ledger) Apply(collection, op string, payload interface{}) {
	e, ok := toEntity(payload)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch op {
	case opCreate:
		l.lists[collection] = ApplyCreated(l.lists[collection], e)
	case opUpdate:
		l.lists[collection] = ApplyUpdated(l.lists[collection], e)
	case opDelete:
		l.lists[collection] = ApplyDeleted(l.lists[collection], entityID(e))
	}
}

// cloneList sao chép cả slice lẫn từng Entity map bên trong;
// chỉ copy slice thôi thì caller sửa snapshot vẫn lọt ngược vào ledger.
func cloneList(list []Entity) []Entity {
	out := make([]Entity, len(list))
	for i, e := range list {
		cp := make(Entity, len(e))
		for k, v := range e {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Snapshot trả về bản sao danh sách của một collection.
func (l *Ledger) Snapshot(collection string) []Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return cloneList(l.lists[collection])
}

// Snapshots trả về bản sao của toàn bộ các danh sách.
func (l *Ledger) Snapshots() map[string][]Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string][]Entity, len(l.lists))
	for collection, list := range l.lists {
		out[collection] = cloneList(list)
	}
	return out
}

func toEntity(payload interface{}) (Entity, bool) {
	if e, ok := payload.(Entity); ok {
		return e, true
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	var e Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	return e, true
}
