// server/internal/api/handlers/medication_handler.go
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

type MedicationHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateMedicationPayload struct {
	CageID      string    `json:"cageId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Dosage      string    `json:"dosage" binding:"required"`
	AppliedDate time.Time `json:"appliedDate" binding:"required"`
	Notes       string    `json:"notes"`
}

// CreateMedication ghi nhận một lần dùng thuốc cho một lồng nuôi.
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var payload CreateMedicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.DB.Collection("cages").CountDocuments(context.Background(), bson.M{"cageID": payload.CageID})
	if err != nil || count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cage with ID '%s' does not exist", payload.CageID)})
		return
	}

	newMedication := models.Medication{
		MedicationID: fmt.Sprintf("MED-%s", strings.ToUpper(uuid.New().String()[:8])),
		CageID:       payload.CageID,
		Name:         payload.Name,
		Dosage:       payload.Dosage,
		AppliedDate:  payload.AppliedDate,
		Notes:        payload.Notes,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	collection := h.DB.Collection("medications")
	result, err := collection.InsertOne(context.Background(), newMedication)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medication"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newMedication.ID = oid
	}

	h.Hub.Publish(socket.EventMedicationCreated, newMedication)

	c.JSON(http.StatusCreated, newMedication)
}

// GetAllMedications lấy danh sách các lần dùng thuốc.
func (h *MedicationHandler) GetAllMedications(c *gin.Context) {
	collection := h.DB.Collection("medications")
	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query medications"})
		return
	}
	defer cursor.Close(context.Background())

	var medications []models.Medication
	if err = cursor.All(context.Background(), &medications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode medications"})
		return
	}

	if medications == nil {
		medications = []models.Medication{}
	}

	page := listquery.Apply(medications, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Medication]{
		SearchText: func(m models.Medication) string { return m.MedicationID + " " + m.Name + " " + m.CageID },
		Less: func(a, b models.Medication, sortBy string) bool {
			switch sortBy {
			case "name":
				return a.Name < b.Name
			case "appliedDate":
				return a.AppliedDate.Before(b.AppliedDate)
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetMedicationsByCage lấy các lần dùng thuốc của một lồng nuôi cụ thể.
func (h *MedicationHandler) GetMedicationsByCage(c *gin.Context) {
	cageID := c.Param("cageId")

	collection := h.DB.Collection("medications")
	cursor, err := collection.Find(context.Background(), bson.M{"cageID": cageID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query medications"})
		return
	}
	defer cursor.Close(context.Background())

	var medications []models.Medication
	if err = cursor.All(context.Background(), &medications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode medications"})
		return
	}

	if medications == nil {
		medications = []models.Medication{}
	}

	c.JSON(http.StatusOK, medications)
}

// GetMedicationByID lấy chi tiết một lần dùng thuốc theo medicationID.
func (h *MedicationHandler) GetMedicationByID(c *gin.Context) {
	medicationID := c.Param("id")

	collection := h.DB.Collection("medications")
	var medication models.Medication
	err := collection.FindOne(context.Background(), bson.M{"medicationID": medicationID}).Decode(&medication)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication"})
		}
		return
	}

	c.JSON(http.StatusOK, medication)
}

// UpdateMedication cập nhật một lần dùng thuốc theo medicationID.
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	medicationID := c.Param("id")

	var payload CreateMedicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("medications")
	result, err := collection.UpdateOne(context.Background(), bson.M{"medicationID": medicationID}, bson.M{"$set": bson.M{
		"cageID":      payload.CageID,
		"name":        payload.Name,
		"dosage":      payload.Dosage,
		"appliedDate": payload.AppliedDate,
		"notes":       payload.Notes,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medication"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	var medication models.Medication
	if err := collection.FindOne(context.Background(), bson.M{"medicationID": medicationID}).Decode(&medication); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated medication"})
		return
	}

	h.Hub.Publish(socket.EventMedicationUpdated, medication)

	c.JSON(http.StatusOK, medication)
}

// DeleteMedication xóa một lần dùng thuốc theo medicationID.
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	medicationID := c.Param("id")

	collection := h.DB.Collection("medications")
	var medication models.Medication
	if err := collection.FindOne(context.Background(), bson.M{"medicationID": medicationID}).Decode(&medication); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication"})
		}
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"medicationID": medicationID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medication"})
		return
	}

	h.Hub.Publish(socket.EventMedicationDeleted, socket.DeletePayload{ID: medication.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully"})
}
