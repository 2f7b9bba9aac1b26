// server/internal/models/requisition.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequisitionMaterial là một dòng vật tư trong phiếu yêu cầu vật tư công trình.
type RequisitionMaterial struct {
	Name     string `bson:"name" json:"name"`
	Unit     string `bson:"unit" json:"unit"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Requisition là phiếu yêu cầu vật tư theo công trình (stock request),
// song song với AssetRequest nhưng cho vật tư xây dựng, có attachment và comment riêng.
type Requisition struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	RequisitionID string                `bson:"requisitionID" json:"requisitionId"` // e.g., "SREQ-3F9A21BC"
	SiteID        string                `bson:"siteID" json:"siteId"`
	Description   string                `bson:"description,omitempty" json:"description,omitempty"`
	Materials     []RequisitionMaterial `bson:"materials" json:"materials"`
	Status        string                `bson:"status" json:"status"` // PENDING, APPROVED, REJECTED, FULFILLED
	CreatedBy     string                `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// Attachment là một file đính kèm của phiếu yêu cầu, đã upload lên S3.
type Attachment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequisitionID string             `bson:"requisitionID" json:"requisitionId"`
	FileName      string             `bson:"fileName" json:"fileName"`
	FileURL       string             `bson:"fileURL" json:"fileUrl"`
	ContentType   string             `bson:"contentType" json:"contentType"`
	Role          string             `bson:"role" json:"role"`
	UserID        string             `bson:"userID" json:"userId"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	UploadedAt    time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// Comment là một bình luận trên phiếu yêu cầu.
type Comment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequisitionID string             `bson:"requisitionID" json:"requisitionId"`
	AuthorID      string             `bson:"authorID" json:"authorId"`
	AuthorRole    string             `bson:"authorRole" json:"authorRole"`
	Body          string             `bson:"body" json:"body"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
