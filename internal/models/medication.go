// server/internal/models/medication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medication là một lần dùng thuốc / lô thuốc gắn với một lồng nuôi.
type Medication struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MedicationID string             `bson:"medicationID" json:"medicationId"` // e.g., "MED-3F9A21BC"
	CageID       string             `bson:"cageID" json:"cageId"`
	Name         string             `bson:"name" json:"name"`
	Dosage       string             `bson:"dosage" json:"dosage"` // e.g., "5g/kg thức ăn"
	AppliedDate  time.Time          `bson:"appliedDate" json:"appliedDate"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
