// server/internal/api/handlers/cage_handler.go
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

type CageHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateCagePayload struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Species   string `json:"species" binding:"required"`
	FishCount int    `json:"fishCount" binding:"min=0"`
	Status    string `json:"status"`
}

// CreateCage tạo một lồng nuôi mới.
func (h *CageHandler) CreateCage(c *gin.Context) {
	var payload CreateCagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if payload.Status == "" {
		payload.Status = "ACTIVE"
	}

	newCage := models.Cage{
		CageID:    fmt.Sprintf("CAGE-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:      payload.Name,
		Location:  payload.Location,
		Species:   payload.Species,
		FishCount: payload.FishCount,
		Status:    payload.Status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	collection := h.DB.Collection("cages")
	result, err := collection.InsertOne(context.Background(), newCage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cage"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newCage.ID = oid
	}

	h.Hub.Publish(socket.EventCageCreated, newCage)

	c.JSON(http.StatusCreated, newCage)
}

// GetAllCages lấy danh sách lồng nuôi, có lọc/sắp xếp/phân trang.
func (h *CageHandler) GetAllCages(c *gin.Context) {
	collection := h.DB.Collection("cages")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query cages"})
		return
	}
	defer cursor.Close(context.Background())

	var cages []models.Cage
	if err = cursor.All(context.Background(), &cages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode cages"})
		return
	}

	if cages == nil {
		cages = []models.Cage{}
	}

	page := listquery.Apply(cages, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Cage]{
		SearchText: func(cg models.Cage) string { return cg.CageID + " " + cg.Name + " " + cg.Location + " " + cg.Species },
		Status:     func(cg models.Cage) string { return cg.Status },
		Less: func(a, b models.Cage, sortBy string) bool {
			switch sortBy {
			case "name":
				return a.Name < b.Name
			case "fishCount":
				return a.FishCount < b.FishCount
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetCageByID lấy thông tin lồng nuôi theo cageID.
func (h *CageHandler) GetCageByID(c *gin.Context) {
	cageID := c.Param("id")

	collection := h.DB.Collection("cages")
	var cage models.Cage
	err := collection.FindOne(context.Background(), bson.M{"cageID": cageID}).Decode(&cage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cage not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cage"})
		}
		return
	}

	c.JSON(http.StatusOK, cage)
}

// UpdateCage cập nhật thông tin lồng nuôi theo cageID.
func (h *CageHandler) UpdateCage(c *gin.Context) {
	cageID := c.Param("id")

	var payload CreateCagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("cages")
	result, err := collection.UpdateOne(context.Background(), bson.M{"cageID": cageID}, bson.M{"$set": bson.M{
		"name":      payload.Name,
		"location":  payload.Location,
		"species":   payload.Species,
		"fishCount": payload.FishCount,
		"status":    payload.Status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cage"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cage not found"})
		return
	}

	var cage models.Cage
	if err := collection.FindOne(context.Background(), bson.M{"cageID": cageID}).Decode(&cage); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated cage"})
		return
	}

	h.Hub.Publish(socket.EventCageUpdated, cage)

	c.JSON(http.StatusOK, cage)
}

// DeleteCage xóa một lồng nuôi theo cageID.
func (h *CageHandler) DeleteCage(c *gin.Context) {
	cageID := c.Param("id")

	collection := h.DB.Collection("cages")
	var cage models.Cage
	if err := collection.FindOne(context.Background(), bson.M{"cageID": cageID}).Decode(&cage); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cage not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cage"})
		}
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"cageID": cageID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cage"})
		return
	}

	h.Hub.Publish(socket.EventCageDeleted, socket.DeletePayload{ID: cage.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Cage deleted successfully"})
}
