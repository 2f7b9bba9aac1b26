// server/internal/api/handlers/labbox_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aquafarm-hrm-api-server/internal/listquery"
	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LabBoxHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateLabBoxPayload struct {
	Code        string `json:"code" binding:"required"`
	CageID      string `json:"cageId"`
	SampleType  string `json:"sampleType" binding:"required"`
	Description string `json:"description"`
}

// CreateLabBox tạo một hộp mẫu xét nghiệm mới. Code phải là duy nhất.
func (h *LabBoxHandler) CreateLabBox(c *gin.Context) {
	var payload CreateLabBoxPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("laboratory_boxes")

	count, err := collection.CountDocuments(context.Background(), bson.M{"code": payload.Code})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for laboratory box"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Laboratory box with this code already exists"})
		return
	}

	newBox := models.LaboratoryBox{
		BoxID:       fmt.Sprintf("LBOX-%s", strings.ToUpper(uuid.New().String()[:8])),
		Code:        payload.Code,
		CageID:      payload.CageID,
		SampleType:  payload.SampleType,
		Description: payload.Description,
		Status:      "IN_USE",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := collection.InsertOne(context.Background(), newBox)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create laboratory box"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newBox.ID = oid
	}

	h.Hub.Publish(socket.EventLabBoxCreated, newBox)

	c.JSON(http.StatusCreated, newBox)
}

// GetAllLabBoxes lấy danh sách hộp mẫu; tìm theo code không phân biệt hoa thường.
func (h *LabBoxHandler) GetAllLabBoxes(c *gin.Context) {
	collection := h.DB.Collection("laboratory_boxes")
	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query laboratory boxes"})
		return
	}
	defer cursor.Close(context.Background())

	var boxes []models.LaboratoryBox
	if err = cursor.All(context.Background(), &boxes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode laboratory boxes"})
		return
	}

	if boxes == nil {
		boxes = []models.LaboratoryBox{}
	}

	page := listquery.Apply(boxes, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.LaboratoryBox]{
		SearchText: func(b models.LaboratoryBox) string { return b.Code + " " + b.BoxID + " " + b.SampleType },
		Status:     func(b models.LaboratoryBox) string { return b.Status },
		Less: func(a, b models.LaboratoryBox, sortBy string) bool {
			switch sortBy {
			case "code":
				return a.Code < b.Code
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetLabBoxByID lấy thông tin hộp mẫu theo boxID.
func (h *LabBoxHandler) GetLabBoxByID(c *gin.Context) {
	boxID := c.Param("id")

	collection := h.DB.Collection("laboratory_boxes")
	var box models.LaboratoryBox
	err := collection.FindOne(context.Background(), bson.M{"boxID": boxID}).Decode(&box)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Laboratory box not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve laboratory box"})
		}
		return
	}

	c.JSON(http.StatusOK, box)
}

type UpdateLabBoxPayload struct {
	Code        string `json:"code" binding:"required"`
	CageID      string `json:"cageId"`
	SampleType  string `json:"sampleType" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required"`
}

// UpdateLabBox cập nhật thông tin hộp mẫu theo boxID.
func (h *LabBoxHandler) UpdateLabBox(c *gin.Context) {
	boxID := c.Param("id")

	var payload UpdateLabBoxPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("laboratory_boxes")
	result, err := collection.UpdateOne(context.Background(), bson.M{"boxID": boxID}, bson.M{"$set": bson.M{
		"code":        payload.Code,
		"cageID":      payload.CageID,
		"sampleType":  payload.SampleType,
		"description": payload.Description,
		"status":      payload.Status,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update laboratory box"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laboratory box not found"})
		return
	}

	var box models.LaboratoryBox
	if err := collection.FindOne(context.Background(), bson.M{"boxID": boxID}).Decode(&box); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated laboratory box"})
		return
	}

	h.Hub.Publish(socket.EventLabBoxUpdated, box)

	c.JSON(http.StatusOK, box)
}

// DeleteLabBox xóa một hộp mẫu theo boxID.
func (h *LabBoxHandler) DeleteLabBox(c *gin.Context) {
	boxID := c.Param("id")

	collection := h.DB.Collection("laboratory_boxes")
	var box models.LaboratoryBox
	if err := collection.FindOne(context.Background(), bson.M{"boxID": boxID}).Decode(&box); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Laboratory box not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve laboratory box"})
		}
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"boxID": boxID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete laboratory box"})
		return
	}

	h.Hub.Publish(socket.EventLabBoxDeleted, socket.DeletePayload{ID: box.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Laboratory box deleted successfully"})
}
