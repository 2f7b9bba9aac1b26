// server/internal/models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset là một tài sản trong kho (thiết bị, dụng cụ, vật tư HR).
type Asset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID   string             `bson:"assetID" json:"assetID"` // User-friendly unique ID, e.g., "AST-3F9A21BC"
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"` // e.g., "EQUIPMENT", "TOOL", "SUPPLY"
	Unit      string             `bson:"unit" json:"unit"`         // e.g., "pcs", "set"
	Quantity  int                `bson:"quantity" json:"quantity"` // số lượng đang có sẵn trong kho
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
