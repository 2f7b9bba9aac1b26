// server/internal/workflow/workflow.go

// Package workflow chứa phần tính toán thuần của quy trình cấp phát / mua sắm.
// Handler chỉ đọc-ghi MongoDB và phát socket; mọi phép biến đổi trạng thái item
// đều đi qua đây để test được độc lập.
package workflow

import (
	"fmt"

	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/status"
)

// Issuance là một dòng admin nhập khi duyệt-và-cấp-phát.
type Issuance struct {
	ItemID         string `json:"itemId" binding:"required"`
	IssuedQuantity int    `json:"issuedQuantity"`
}

// Stock là số lượng tồn kho hiện có theo assetID.
type Stock map[string]int

// ApprovalResult là kết quả thuần của một lần duyệt:
// danh sách item mới và số lượng đã trừ kho theo assetID.
type ApprovalResult struct {
	Items      []models.AssetRequestItem
	Deductions map[string]int
}

// ApplyApproval áp toàn bộ batch cấp phát lên các item của một request PENDING.
// Item không có trong danh sách issued được coi là cấp 0 (chờ mua sắm toàn bộ).
// Trả lỗi khi số lượng âm, vượt số lượng yêu cầu, vượt tồn kho, hoặc itemID lạ —
// server luôn kiểm tra lại, không tin phần kiểm tra phía client.
func ApplyApproval(items []models.AssetRequestItem, stock Stock, issued []Issuance) (ApprovalResult, error) {
	byItem := make(map[string]int, len(issued))
	for _, iss := range issued {
		if iss.IssuedQuantity < 0 {
			return ApprovalResult{}, fmt.Errorf("issued quantity for item %s must not be negative", iss.ItemID)
		}
		if _, dup := byItem[iss.ItemID]; dup {
			return ApprovalResult{}, fmt.Errorf("duplicate issuance for item %s", iss.ItemID)
		}
		byItem[iss.ItemID] = iss.IssuedQuantity
	}

	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ItemID] = true
	}
	for itemID := range byItem {
		if !known[itemID] {
			return ApprovalResult{}, fmt.Errorf("unknown item: %s", itemID)
		}
	}

	// Tồn kho còn lại trong lúc duyệt; nhiều item có thể cùng một asset.
	remaining := make(Stock, len(stock))
	for assetID, qty := range stock {
		remaining[assetID] = qty
	}

	result := ApprovalResult{
		Items:      make([]models.AssetRequestItem, 0, len(items)),
		Deductions: make(map[string]int),
	}

	for _, it := range items {
		q := byItem[it.ItemID]
		if q > it.Quantity {
			return ApprovalResult{}, fmt.Errorf("issued quantity %d exceeds requested quantity %d for item %s", q, it.Quantity, it.ItemID)
		}
		if q > remaining[it.AssetID] {
			return ApprovalResult{}, fmt.Errorf("issued quantity %d exceeds available stock %d for asset %s", q, remaining[it.AssetID], it.AssetID)
		}

		it.QuantityIssued = q
		switch {
		case q == it.Quantity:
			it.Status = status.ItemIssued
			it.ProcurementStatus = status.ProcurementNotRequired
		case q > 0:
			it.Status = status.ItemPartiallyIssued
			it.ProcurementStatus = status.ProcurementRequired
		default:
			it.Status = status.ItemPendingProcurement
			it.ProcurementStatus = status.ProcurementRequired
		}

		if q > 0 {
			remaining[it.AssetID] -= q
			result.Deductions[it.AssetID] += q
		}
		result.Items = append(result.Items, it)
	}

	return result, nil
}

// ProcurementResult là kết quả thuần của việc nhận hàng mua sắm cho một item.
type ProcurementResult struct {
	Item       models.AssetRequestItem
	IssuedNow  int // số lượng cấp ngay cho item đang chờ
	StockDelta int // thay đổi tồn kho ròng (procured - IssuedNow); âm khi cấp lẹm vào tồn kho sẵn có
}

// CompleteProcurement nhận procuredQuantity hàng về cho một item đang ORDERED:
// cộng vào kho rồi cấp ngay phần item còn thiếu. Nếu nhận chưa đủ, dòng mua sắm
// quay lại REQUIRED để đặt tiếp; đủ rồi thì COMPLETED.
func CompleteProcurement(item models.AssetRequestItem, available int, procured int) (ProcurementResult, error) {
	if procured < 1 {
		return ProcurementResult{}, fmt.Errorf("procured quantity must be at least 1")
	}
	if item.ProcurementStatus != status.ProcurementOrdered {
		return ProcurementResult{}, fmt.Errorf("item %s is not awaiting procurement delivery (procurementStatus=%s)", item.ItemID, item.ProcurementStatus)
	}

	pool := available + procured
	issueNow := item.Needed()
	if issueNow > pool {
		issueNow = pool
	}

	item.QuantityIssued += issueNow
	switch {
	case item.Needed() == 0:
		item.Status = status.ItemIssued
		item.ProcurementStatus = status.ProcurementCompleted
	case item.QuantityIssued > 0:
		item.Status = status.ItemPartiallyIssued
		item.ProcurementStatus = status.ProcurementRequired
	default:
		item.Status = status.ItemPendingProcurement
		item.ProcurementStatus = status.ProcurementRequired
	}

	return ProcurementResult{
		Item:       item,
		IssuedNow:  issueNow,
		StockDelta: procured - issueNow,
	}, nil
}
