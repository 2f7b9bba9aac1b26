// server/internal/models/laboratory_box.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LaboratoryBox là một hộp mẫu xét nghiệm trong phòng lab.
type LaboratoryBox struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoxID       string             `bson:"boxID" json:"boxId"` // e.g., "LBOX-3F9A21BC"
	Code        string             `bson:"code" json:"code"`   // mã hiển thị, e.g., "LB-12"
	CageID      string             `bson:"cageID,omitempty" json:"cageId,omitempty"`
	SampleType  string             `bson:"sampleType" json:"sampleType"` // e.g., "WATER", "TISSUE"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"` // e.g., "IN_USE", "ARCHIVED"
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
