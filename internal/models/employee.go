// server/internal/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee là hồ sơ nhân viên. PhotoURL trỏ tới ảnh đã upload lên S3.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employeeID" json:"employeeId"` // e.g., "EMP-3F9A21BC"
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Position   string             `bson:"position" json:"position"` // e.g., "Kỹ thuật viên", "Quản lý trại"
	SiteID     string             `bson:"siteID,omitempty" json:"siteId,omitempty"`
	PhotoURL   string             `bson:"photoURL,omitempty" json:"photoUrl,omitempty"`
	Status     string             `bson:"status" json:"status"` // e.g., "ACTIVE", "INACTIVE"
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
