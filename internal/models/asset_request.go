// server/internal/models/asset_request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetRequestItem là một dòng trong yêu cầu cấp phát tài sản.
// Item được nhúng trong request cha, không bao giờ bị xóa độc lập.
type AssetRequestItem struct {
	ItemID            string `bson:"itemID" json:"itemId"`
	AssetID           string `bson:"assetID" json:"assetId"`
	Quantity          int    `bson:"quantity" json:"quantity"`             // số lượng yêu cầu
	QuantityIssued    int    `bson:"quantityIssued" json:"quantityIssued"` // đã cấp, luôn <= Quantity
	Status            string `bson:"status" json:"status"`                 // PENDING, ISSUED, PARTIALLY_ISSUED, PENDING_PROCUREMENT
	ProcurementStatus string `bson:"procurementStatus" json:"procurementStatus"` // NOT_REQUIRED, REQUIRED, ORDERED, COMPLETED
}

// Needed trả về số lượng còn thiếu của item, luôn >= 0.
func (it AssetRequestItem) Needed() int {
	n := it.Quantity - it.QuantityIssued
	if n < 0 {
		return 0
	}
	return n
}

type AssetRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID   string             `bson:"requestID" json:"requestId"` // e.g., "AREQ-3F9A21BC"
	EmployeeID  string             `bson:"employeeID" json:"employeeId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Items       []AssetRequestItem `bson:"items" json:"items"` // thứ tự chèn = thứ tự yêu cầu
	Status      string             `bson:"status" json:"status"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
