// server/internal/models/feed.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed là một lần cho ăn / lô thức ăn gắn với một lồng nuôi.
type Feed struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FeedID     string             `bson:"feedID" json:"feedId"` // e.g., "FEED-3F9A21BC"
	CageID     string             `bson:"cageID" json:"cageId"`
	Name       string             `bson:"name" json:"name"`
	QuantityKg float64            `bson:"quantityKg" json:"quantityKg"`
	FeedDate   time.Time          `bson:"feedDate" json:"feedDate"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
