// server/internal/status/status.go
package status

import (
	"fmt"

	"aquafarm-hrm-api-server/internal/models"
)

// Trạng thái của AssetRequest (mức request).
const (
	RequestPending         = "PENDING"
	RequestApproved        = "APPROVED"
	RequestRejected        = "REJECTED"
	RequestIssued          = "ISSUED"
	RequestPartiallyIssued = "PARTIALLY_ISSUED"
	RequestClosed          = "CLOSED"
)

// Trạng thái của AssetRequestItem (mức item).
const (
	ItemPending            = "PENDING"
	ItemIssued             = "ISSUED"
	ItemPartiallyIssued    = "PARTIALLY_ISSUED"
	ItemPendingProcurement = "PENDING_PROCUREMENT"
)

// Trạng thái mua sắm của một item.
const (
	ProcurementNotRequired = "NOT_REQUIRED"
	ProcurementRequired    = "REQUIRED"
	ProcurementOrdered     = "ORDERED"
	ProcurementCompleted   = "COMPLETED"
)

// Trạng thái của Requisition (phiếu vật tư công trình).
const (
	RequisitionPending   = "PENDING"
	RequisitionApproved  = "APPROVED"
	RequisitionRejected  = "REJECTED"
	RequisitionFulfilled = "FULFILLED"
)

func ParseRequestStatus(s string) (string, error) {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestIssued, RequestPartiallyIssued, RequestClosed:
		return s, nil
	default:
		return "", fmt.Errorf("unknown request status: %s", s)
	}
}

func ParseProcurementStatus(s string) (string, error) {
	switch s {
	case ProcurementNotRequired, ProcurementRequired, ProcurementOrdered, ProcurementCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("unknown procurement status: %s", s)
	}
}

// requestTransitions liệt kê các chuyển trạng thái hợp lệ ở mức request.
// REJECTED, CLOSED là trạng thái cuối.
var requestTransitions = map[string]map[string]bool{
	RequestPending: {
		RequestApproved:        true,
		RequestIssued:          true,
		RequestPartiallyIssued: true,
		RequestRejected:        true,
	},
	RequestApproved: {
		RequestPartiallyIssued: true,
		RequestClosed:          true,
	},
	RequestIssued: {
		RequestClosed: true,
	},
	RequestPartiallyIssued: {
		RequestPartiallyIssued: true,
		RequestClosed:          true,
	},
	RequestRejected: {},
	RequestClosed:   {},
}

// procurementTransitions: NOT_REQUIRED -> REQUIRED -> ORDERED -> COMPLETED.
// Một dòng mua sắm chưa đủ hàng quay lại REQUIRED để đặt tiếp.
var procurementTransitions = map[string]map[string]bool{
	ProcurementNotRequired: {ProcurementRequired: true},
	ProcurementRequired:    {ProcurementOrdered: true},
	ProcurementOrdered:     {ProcurementCompleted: true, ProcurementRequired: true},
	ProcurementCompleted:   {},
}

func CanTransitionRequest(from, to string) bool {
	m, ok := requestTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

func CanTransitionProcurement(from, to string) bool {
	m, ok := procurementTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// AggregateRequestStatus tính trạng thái của request cha từ trạng thái các item.
// Đây là nguồn sự thật duy nhất cho quy tắc tổng hợp; handler không tự tính.
//
//   - mọi item đã cấp đủ, không item nào từng phải mua sắm  => ISSUED
//   - mọi item đã cấp đủ, có item đi qua vòng mua sắm       => CLOSED
//   - còn item thiếu hàng nhưng đã cấp được một phần        => PARTIALLY_ISSUED
//   - chưa cấp được gì, tất cả chờ mua sắm                  => APPROVED
func AggregateRequestStatus(items []models.AssetRequestItem) string {
	if len(items) == 0 {
		return RequestPending
	}

	allSettled := true
	anyIssued := false
	anyProcured := false
	for _, it := range items {
		if it.Needed() > 0 {
			allSettled = false
		}
		if it.QuantityIssued > 0 {
			anyIssued = true
		}
		if it.ProcurementStatus != ProcurementNotRequired {
			anyProcured = true
		}
	}

	if allSettled {
		if anyProcured {
			return RequestClosed
		}
		return RequestIssued
	}
	if anyIssued {
		return RequestPartiallyIssued
	}
	return RequestApproved
}
