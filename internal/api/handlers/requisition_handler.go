// server/internal/api/handlers/requisition_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"aquafarm-hrm-api-server/internal/listquery"
	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/s3"
	"aquafarm-hrm-api-server/internal/socket"
	"aquafarm-hrm-api-server/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Giới hạn file đính kèm của phiếu vật tư.
const maxAttachmentSize = 10 << 20 // 10 MB

// attachmentContentTypes: phiếu vật tư nhận hóa đơn/ảnh chứng từ.
var attachmentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type RequisitionHandler struct {
	DB         *mongo.Database
	Hub        *socket.Hub
	S3Uploader *s3.Uploader
}

type CreateRequisitionPayload struct {
	SiteID      string                       `json:"siteId" binding:"required"`
	Description string                       `json:"description"`
	Materials   []models.RequisitionMaterial `json:"materials" binding:"required,min=1,dive"`
}

// CreateRequisition tạo phiếu yêu cầu vật tư công trình mới.
func (h *RequisitionHandler) CreateRequisition(c *gin.Context) {
	creatorID := c.GetString("user_id")

	var payload CreateRequisitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, m := range payload.Materials {
		if m.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Material %q must have quantity of at least 1", m.Name)})
			return
		}
	}

	newRequisition := models.Requisition{
		RequisitionID: fmt.Sprintf("SREQ-%s", strings.ToUpper(uuid.New().String()[:8])),
		SiteID:        payload.SiteID,
		Description:   payload.Description,
		Materials:     payload.Materials,
		Status:        status.RequisitionPending,
		CreatedBy:     creatorID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	collection := h.DB.Collection("requisitions")
	result, err := collection.InsertOne(context.Background(), newRequisition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create requisition"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newRequisition.ID = oid
	}

	h.Hub.Publish(socket.EventRequisitionCreated, newRequisition)

	c.JSON(http.StatusCreated, newRequisition)
}

// GetAllRequisitions lấy danh sách phiếu vật tư, có lọc/sắp xếp/phân trang.
func (h *RequisitionHandler) GetAllRequisitions(c *gin.Context) {
	filter := bson.M{}
	if siteID := c.Query("siteId"); siteID != "" {
		filter["siteID"] = siteID
	}

	collection := h.DB.Collection("requisitions")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requisitions"})
		return
	}
	defer cursor.Close(context.Background())

	var requisitions []models.Requisition
	if err = cursor.All(context.Background(), &requisitions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode requisitions"})
		return
	}

	if requisitions == nil {
		requisitions = []models.Requisition{}
	}

	page := listquery.Apply(requisitions, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Requisition]{
		SearchText: func(r models.Requisition) string { return r.RequisitionID + " " + r.SiteID + " " + r.Description },
		Status:     func(r models.Requisition) string { return r.Status },
		Less: func(a, b models.Requisition, sortBy string) bool {
			switch sortBy {
			case "siteId":
				return a.SiteID < b.SiteID
			case "status":
				return a.Status < b.Status
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetRequisitionByID lấy chi tiết một phiếu vật tư theo requisitionID.
func (h *RequisitionHandler) GetRequisitionByID(c *gin.Context) {
	requisitionID := c.Param("id")

	collection := h.DB.Collection("requisitions")
	var requisition models.Requisition
	if err := collection.FindOne(context.Background(), bson.M{"requisitionID": requisitionID}).Decode(&requisition); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requisition"})
		}
		return
	}

	c.JSON(http.StatusOK, requisition)
}

type UpdateRequisitionStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// requisitionTransitions: PENDING -> APPROVED/REJECTED, APPROVED -> FULFILLED.
var requisitionTransitions = map[string]map[string]bool{
	status.RequisitionPending:  {status.RequisitionApproved: true, status.RequisitionRejected: true},
	status.RequisitionApproved: {status.RequisitionFulfilled: true},
}

// UpdateRequisitionStatus chuyển trạng thái phiếu vật tư.
func (h *RequisitionHandler) UpdateRequisitionStatus(c *gin.Context) {
	requisitionID := c.Param("id")

	var payload UpdateRequisitionStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("requisitions")
	var requisition models.Requisition
	if err := collection.FindOne(context.Background(), bson.M{"requisitionID": requisitionID}).Decode(&requisition); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requisition"})
		}
		return
	}

	if !requisitionTransitions[requisition.Status][payload.Status] {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Cannot change requisition status from %s to %s", requisition.Status, payload.Status)})
		return
	}

	if _, err := collection.UpdateOne(
		context.Background(),
		bson.M{"requisitionID": requisitionID, "status": requisition.Status},
		bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}},
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update requisition status"})
		return
	}

	requisition.Status = payload.Status
	requisition.UpdatedAt = time.Now()

	h.Hub.Publish(socket.EventRequisitionUpdated, requisition)

	c.JSON(http.StatusOK, requisition)
}

// UploadAttachment nhận multipart file + metadata {role, userId, description}
// rồi đẩy file lên S3 và lưu bản ghi đính kèm.
func (h *RequisitionHandler) UploadAttachment(c *gin.Context) {
	requisitionID := c.Param("id")

	count, err := h.DB.Collection("requisitions").CountDocuments(context.Background(), bson.M{"requisitionID": requisitionID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		return
	}

	role := c.PostForm("role")
	userID := c.PostForm("userId")
	if role == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and userId are required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment file is required"})
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Attachment is larger than %d bytes", maxAttachmentSize)})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := attachmentContentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported attachment type %q", ext)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read attachment"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("requisitions/%s/%s%s", requisitionID, uuid.New().String()[:8], ext)
	fileURL, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment", "details": err.Error()})
		return
	}

	attachment := models.Attachment{
		RequisitionID: requisitionID,
		FileName:      fileHeader.Filename,
		FileURL:       fileURL,
		ContentType:   contentType,
		Role:          role,
		UserID:        userID,
		Description:   c.PostForm("description"),
		UploadedAt:    time.Now(),
	}

	result, err := h.DB.Collection("requisition_attachments").InsertOne(context.Background(), attachment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		attachment.ID = oid
	}

	c.JSON(http.StatusCreated, attachment)
}

// GetAttachments liệt kê các file đính kèm của một phiếu vật tư.
func (h *RequisitionHandler) GetAttachments(c *gin.Context) {
	requisitionID := c.Param("id")

	collection := h.DB.Collection("requisition_attachments")
	cursor, err := collection.Find(context.Background(), bson.M{"requisitionID": requisitionID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query attachments"})
		return
	}
	defer cursor.Close(context.Background())

	var attachments []models.Attachment
	if err = cursor.All(context.Background(), &attachments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode attachments"})
		return
	}

	if attachments == nil {
		attachments = []models.Attachment{}
	}

	c.JSON(http.StatusOK, attachments)
}

type CreateCommentPayload struct {
	Body string `json:"body" binding:"required"`
}

// AddComment thêm một bình luận vào phiếu vật tư.
func (h *RequisitionHandler) AddComment(c *gin.Context) {
	requisitionID := c.Param("id")

	count, err := h.DB.Collection("requisitions").CountDocuments(context.Background(), bson.M{"requisitionID": requisitionID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		return
	}

	var payload CreateCommentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		RequisitionID: requisitionID,
		AuthorID:      c.GetString("user_id"),
		AuthorRole:    c.GetString("user_role"),
		Body:          payload.Body,
		CreatedAt:     time.Now(),
	}

	result, err := h.DB.Collection("requisition_comments").InsertOne(context.Background(), comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	h.Hub.Publish(socket.EventRequisitionCommentAdded, comment)

	c.JSON(http.StatusCreated, comment)
}

// GetComments liệt kê bình luận của một phiếu vật tư theo thứ tự thời gian.
func (h *RequisitionHandler) GetComments(c *gin.Context) {
	requisitionID := c.Param("id")

	collection := h.DB.Collection("requisition_comments")
	cursor, err := collection.Find(context.Background(), bson.M{"requisitionID": requisitionID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query comments"})
		return
	}
	defer cursor.Close(context.Background())

	var comments []models.Comment
	if err = cursor.All(context.Background(), &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, comments)
}
