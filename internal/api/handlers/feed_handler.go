// server/internal/api/handlers/feed_handler.go
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

type FeedHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateFeedPayload struct {
	CageID     string    `json:"cageId" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	QuantityKg float64   `json:"quantityKg" binding:"required,gt=0"`
	FeedDate   time.Time `json:"feedDate" binding:"required"`
	Notes      string    `json:"notes"`
}

// CreateFeed ghi nhận một lần cho ăn cho một lồng nuôi.
func (h *FeedHandler) CreateFeed(c *gin.Context) {
	var payload CreateFeedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Lồng nuôi phải tồn tại
	count, err := h.DB.Collection("cages").CountDocuments(context.Background(), bson.M{"cageID": payload.CageID})
	if err != nil || count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cage with ID '%s' does not exist", payload.CageID)})
		return
	}

	newFeed := models.Feed{
		FeedID:     fmt.Sprintf("FEED-%s", strings.ToUpper(uuid.New().String()[:8])),
		CageID:     payload.CageID,
		Name:       payload.Name,
		QuantityKg: payload.QuantityKg,
		FeedDate:   payload.FeedDate,
		Notes:      payload.Notes,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	collection := h.DB.Collection("feeds")
	result, err := collection.InsertOne(context.Background(), newFeed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feed"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newFeed.ID = oid
	}

	h.Hub.Publish(socket.EventFeedCreated, newFeed)

	c.JSON(http.StatusCreated, newFeed)
}

// GetAllFeeds lấy danh sách các lần cho ăn, có thể lọc theo cageId.
func (h *FeedHandler) GetAllFeeds(c *gin.Context) {
	filter := bson.M{}
	if cageID := c.Query("cageId"); cageID != "" {
		filter["cageID"] = cageID
	}

	collection := h.DB.Collection("feeds")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query feeds"})
		return
	}
	defer cursor.Close(context.Background())

	var feeds []models.Feed
	if err = cursor.All(context.Background(), &feeds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode feeds"})
		return
	}

	if feeds == nil {
		feeds = []models.Feed{}
	}

	page := listquery.Apply(feeds, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Feed]{
		SearchText: func(f models.Feed) string { return f.FeedID + " " + f.Name + " " + f.CageID },
		Less: func(a, b models.Feed, sortBy string) bool {
			switch sortBy {
			case "name":
				return a.Name < b.Name
			case "quantityKg":
				return a.QuantityKg < b.QuantityKg
			case "feedDate":
				return a.FeedDate.Before(b.FeedDate)
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetFeedByID lấy chi tiết một lần cho ăn theo feedID.
func (h *FeedHandler) GetFeedByID(c *gin.Context) {
	feedID := c.Param("id")

	collection := h.DB.Collection("feeds")
	var feed models.Feed
	err := collection.FindOne(context.Background(), bson.M{"feedID": feedID}).Decode(&feed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		}
		return
	}

	c.JSON(http.StatusOK, feed)
}

// UpdateFeed cập nhật một lần cho ăn theo feedID.
func (h *FeedHandler) UpdateFeed(c *gin.Context) {
	feedID := c.Param("id")

	var payload CreateFeedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("feeds")
	result, err := collection.UpdateOne(context.Background(), bson.M{"feedID": feedID}, bson.M{"$set": bson.M{
		"cageID":     payload.CageID,
		"name":       payload.Name,
		"quantityKg": payload.QuantityKg,
		"feedDate":   payload.FeedDate,
		"notes":      payload.Notes,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feed"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	var feed models.Feed
	if err := collection.FindOne(context.Background(), bson.M{"feedID": feedID}).Decode(&feed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated feed"})
		return
	}

	h.Hub.Publish(socket.EventFeedUpdated, feed)

	c.JSON(http.StatusOK, feed)
}

// DeleteFeed xóa một lần cho ăn theo feedID.
func (h *FeedHandler) DeleteFeed(c *gin.Context) {
	feedID := c.Param("id")

	collection := h.DB.Collection("feeds")
	var feed models.Feed
	if err := collection.FindOne(context.Background(), bson.M{"feedID": feedID}).Decode(&feed); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		}
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"feedID": feedID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feed"})
		return
	}

	h.Hub.Publish(socket.EventFeedDeleted, socket.DeletePayload{ID: feed.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Feed deleted successfully"})
}
