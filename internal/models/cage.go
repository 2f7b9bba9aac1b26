// server/internal/models/cage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cage là một lồng nuôi cá.
type Cage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CageID    string             `bson:"cageID" json:"cageId"` // e.g., "CAGE-3F9A21BC"
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	Species   string             `bson:"species" json:"species"`   // e.g., "Cá chẽm", "Cá bớp"
	FishCount int                `bson:"fishCount" json:"fishCount"`
	Status    string             `bson:"status" json:"status"` // e.g., "ACTIVE", "HARVESTED", "MAINTENANCE"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
