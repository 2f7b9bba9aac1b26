// server/internal/api/handlers/asset_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aquafarm-hrm-api-server/internal/listquery"
	"aquafarm-hrm-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssetHandler struct {
	DB *mongo.Database
}

type CreateAssetPayload struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Unit     string `json:"unit" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

// CreateAsset tạo một tài sản kho mới.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var payload CreateAssetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAsset := models.Asset{
		AssetID:   fmt.Sprintf("AST-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:      payload.Name,
		Category:  payload.Category,
		Unit:      payload.Unit,
		Quantity:  payload.Quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	collection := h.DB.Collection("assets")
	result, err := collection.InsertOne(context.Background(), newAsset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	newAsset.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, newAsset)
}

// GetAllAssets lấy danh sách tài sản kho, có lọc/sắp xếp/phân trang.
func (h *AssetHandler) GetAllAssets(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	collection := h.DB.Collection("assets")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
		return
	}
	defer cursor.Close(context.Background())

	var assets []models.Asset
	if err = cursor.All(context.Background(), &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assets"})
		return
	}

	if assets == nil {
		assets = []models.Asset{}
	}

	page := listquery.Apply(assets, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Asset]{
		SearchText: func(a models.Asset) string { return a.AssetID + " " + a.Name + " " + a.Category },
		Less: func(a, b models.Asset, sortBy string) bool {
			switch sortBy {
			case "name":
				return a.Name < b.Name
			case "quantity":
				return a.Quantity < b.Quantity
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetAssetByID lấy thông tin tài sản theo assetID.
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	assetID := c.Param("id")

	collection := h.DB.Collection("assets")
	var asset models.Asset
	err := collection.FindOne(context.Background(), bson.M{"assetID": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	c.JSON(http.StatusOK, asset)
}

// UpdateAsset cập nhật thông tin tài sản theo assetID.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID := c.Param("id")

	var payload CreateAssetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("assets")
	result, err := collection.UpdateOne(context.Background(), bson.M{"assetID": assetID}, bson.M{"$set": bson.M{
		"name":      payload.Name,
		"category":  payload.Category,
		"unit":      payload.Unit,
		"quantity":  payload.Quantity,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

// DeleteAsset xóa một tài sản theo assetID.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID := c.Param("id")

	collection := h.DB.Collection("assets")
	_, err := collection.DeleteOne(context.Background(), bson.M{"assetID": assetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
