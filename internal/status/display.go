// server/internal/status/display.go
package status

// DisplayMetadata là thông tin hiển thị của một trạng thái (badge trên dashboard).
// Bảng này được định nghĩa một lần ở đây để các client không phải tự hardcode.
type DisplayMetadata struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

var requestDisplay = map[string]DisplayMetadata{
	RequestPending:         {RequestPending, "Chờ duyệt", "yellow"},
	RequestApproved:        {RequestApproved, "Đã duyệt", "blue"},
	RequestRejected:        {RequestRejected, "Từ chối", "red"},
	RequestIssued:          {RequestIssued, "Đã cấp phát", "green"},
	RequestPartiallyIssued: {RequestPartiallyIssued, "Cấp phát một phần", "orange"},
	RequestClosed:          {RequestClosed, "Đã đóng", "gray"},
}

var procurementDisplay = map[string]DisplayMetadata{
	ProcurementNotRequired: {ProcurementNotRequired, "Không cần mua", "gray"},
	ProcurementRequired:    {ProcurementRequired, "Cần mua thêm", "orange"},
	ProcurementOrdered:     {ProcurementOrdered, "Đã đặt hàng", "blue"},
	ProcurementCompleted:   {ProcurementCompleted, "Đã nhận hàng", "green"},
}

// RequestDisplay trả về metadata hiển thị cho một trạng thái request.
// Trạng thái không xác định trả về chính nó với màu mặc định.
func RequestDisplay(s string) DisplayMetadata {
	if m, ok := requestDisplay[s]; ok {
		return m
	}
	return DisplayMetadata{Status: s, Label: s, Color: "gray"}
}

func ProcurementDisplay(s string) DisplayMetadata {
	if m, ok := procurementDisplay[s]; ok {
		return m
	}
	return DisplayMetadata{Status: s, Label: s, Color: "gray"}
}

// AllDisplayMetadata gom toàn bộ bảng hiển thị, phục vụ endpoint /statuses.
func AllDisplayMetadata() map[string][]DisplayMetadata {
	requests := make([]DisplayMetadata, 0, len(requestDisplay))
	for _, s := range []string{RequestPending, RequestApproved, RequestRejected, RequestIssued, RequestPartiallyIssued, RequestClosed} {
		requests = append(requests, requestDisplay[s])
	}
	procurement := make([]DisplayMetadata, 0, len(procurementDisplay))
	for _, s := range []string{ProcurementNotRequired, ProcurementRequired, ProcurementOrdered, ProcurementCompleted} {
		procurement = append(procurement, procurementDisplay[s])
	}
	return map[string][]DisplayMetadata{
		"request":     requests,
		"procurement": procurement,
	}
}
