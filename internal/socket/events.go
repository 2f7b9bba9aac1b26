// server/internal/socket/events.go
package socket

import (
	"encoding/json"
	"log"
)

// Tên các sự kiện phát cho dashboard. Payload là entity đầy đủ,
// riêng sự kiện *Deleted chỉ mang {id}.
const (
	EventRequestCreated               = "requestCreated"
	EventRequestUpdated               = "requestUpdated"
	EventRequestDeleted               = "requestDeleted"
	EventRequestStatusChanged         = "requestStatusChanged"
	EventRequestItemUpdated           = "requestItemUpdated"
	EventRequestItemProcurementNeeded = "requestItemProcurementNeeded"

	EventCageCreated = "cageCreated"
	EventCageUpdated = "cageUpdated"
	EventCageDeleted = "cageDeleted"

	EventFeedCreated = "feedCreated"
	EventFeedUpdated = "feedUpdated"
	EventFeedDeleted = "feedDeleted"

	EventMedicationCreated = "medicationCreated"
	EventMedicationUpdated = "medicationUpdated"
	EventMedicationDeleted = "medicationDeleted"

	EventLabBoxCreated = "labBoxCreated"
	EventLabBoxUpdated = "labBoxUpdated"
	EventLabBoxDeleted = "labBoxDeleted"

	EventEmployeeCreated = "employeeCreated"
	EventEmployeeUpdated = "employeeUpdated"
	EventEmployeeDeleted = "employeeDeleted"

	EventRequisitionCreated      = "requisitionCreated"
	EventRequisitionUpdated      = "requisitionUpdated"
	EventRequisitionDeleted      = "requisitionDeleted"
	EventRequisitionCommentAdded = "requisitionCommentAdded"

	// eventSync là tin nhắn đầu tiên gửi cho client mới kết nối:
	// bản chụp hiện tại của các danh sách entity.
	eventSync = "sync"
)

// Envelope là khung tin nhắn chung trên kênh socket.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// DeletePayload là payload của các sự kiện *Deleted.
type DeletePayload struct {
	ID string `json:"id"`
}

// eventBindings ánh xạ sự kiện -> (collection trong ledger, phép reconcile).
// Sự kiện không có trong bảng vẫn được broadcast nhưng không đụng ledger.
var eventBindings = map[string]struct {
	Collection string
	Op         string
}{
	EventRequestCreated:               {"assetRequests", opCreate},
	EventRequestUpdated:               {"assetRequests", opUpdate},
	EventRequestDeleted:               {"assetRequests", opDelete},
	EventRequestStatusChanged:         {"assetRequests", opUpdate},
	EventRequestItemUpdated:           {"assetRequests", opUpdate},
	EventRequestItemProcurementNeeded: {"assetRequests", opUpdate},

	EventCageCreated: {"cages", opCreate},
	EventCageUpdated: {"cages", opUpdate},
	EventCageDeleted: {"cages", opDelete},

	EventFeedCreated: {"feeds", opCreate},
	EventFeedUpdated: {"feeds", opUpdate},
	EventFeedDeleted: {"feeds", opDelete},

	EventMedicationCreated: {"medications", opCreate},
	EventMedicationUpdated: {"medications", opUpdate},
	EventMedicationDeleted: {"medications", opDelete},

	EventLabBoxCreated: {"laboratoryBoxes", opCreate},
	EventLabBoxUpdated: {"laboratoryBoxes", opUpdate},
	EventLabBoxDeleted: {"laboratoryBoxes", opDelete},

	EventEmployeeCreated: {"employees", opCreate},
	EventEmployeeUpdated: {"employees", opUpdate},
	EventEmployeeDeleted: {"employees", opDelete},

	EventRequisitionCreated: {"requisitions", opCreate},
	EventRequisitionUpdated: {"requisitions", opUpdate},
	EventRequisitionDeleted: {"requisitions", opDelete},
}

// Publish phát một sự kiện có tên đến tất cả client và cập nhật ledger.
// Lỗi marshal chỉ được log; việc phát sự kiện không bao giờ làm hỏng request gốc.
func (h *Hub) Publish(event string, payload interface{}) {
	message, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("Failed to marshal socket event %s: %v", event, err)
		return
	}

	if binding, ok := eventBindings[event]; ok {
		h.ledger.Apply(binding.Collection, binding.Op, payload)
	}

	h.Broadcast(message)
}

// SendSync gửi bản chụp ledger cho một client vừa kết nối,
// để dashboard reconnect không phải refetch từng danh sách.
func (h *Hub) SendSync(userID string) error {
	message, err := json.Marshal(Envelope{Event: eventSync, Data: h.ledger.Snapshots()})
	if err != nil {
		return err
	}
	return h.Send(userID, message)
}
