// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"aquafarm-hrm-api-server/internal/listquery"
	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/socket"
	"aquafarm-hrm-api-server/internal/status"
	"aquafarm-hrm-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssetRequestHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateAssetRequestItemPayload struct {
	AssetID  string `json:"assetId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreateAssetRequestPayload struct {
	Description string                          `json:"description"`
	Items       []CreateAssetRequestItemPayload `json:"items" binding:"required,min=1,dive"`
}

// IssuedItems được phép rỗng: duyệt mà không cấp gì nghĩa là
// toàn bộ item chuyển sang chờ mua sắm.
type ApproveAssetRequestPayload struct {
	IssuedItems []workflow.Issuance `json:"issuedItems" binding:"dive"`
}

type CompleteProcurementPayload struct {
	ProcuredQuantity int `json:"procuredQuantity" binding:"required,min=1"`
}

// CreateAssetRequest tạo một yêu cầu cấp phát tài sản mới cho nhân viên đang đăng nhập.
func (h *AssetRequestHandler) CreateAssetRequest(c *gin.Context) {
	creatorID := c.GetString("user_id")

	var payload CreateAssetRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Kiểm tra xem tất cả các asset có tồn tại không
	assetCollection := h.DB.Collection("assets")
	items := make([]models.AssetRequestItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		count, err := assetCollection.CountDocuments(context.Background(), bson.M{"assetID": item.AssetID})
		if err != nil || count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Asset with ID '%s' does not exist", item.AssetID)})
			return
		}
		items = append(items, models.AssetRequestItem{
			ItemID:            fmt.Sprintf("ITEM-%s", strings.ToUpper(uuid.New().String()[:8])),
			AssetID:           item.AssetID,
			Quantity:          item.Quantity,
			QuantityIssued:    0,
			Status:            status.ItemPending,
			ProcurementStatus: status.ProcurementNotRequired,
		})
	}

	newRequest := models.AssetRequest{
		RequestID:   fmt.Sprintf("AREQ-%s", strings.ToUpper(uuid.New().String()[:8])),
		EmployeeID:  creatorID,
		Description: payload.Description,
		Items:       items,
		Status:      status.RequestPending,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	collection := h.DB.Collection("asset_requests")
	result, err := collection.InsertOne(context.Background(), newRequest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset request"})
		return
	}

	newRequest.ID = result.InsertedID.(primitive.ObjectID)

	h.Hub.Publish(socket.EventRequestCreated, newRequest)

	c.JSON(http.StatusCreated, newRequest)
}

// GetAllAssetRequests lấy danh sách yêu cầu, có lọc/sắp xếp/phân trang.
func (h *AssetRequestHandler) GetAllAssetRequests(c *gin.Context) {
	filter := bson.M{}
	if employeeID := c.Query("employeeId"); employeeID != "" {
		filter["employeeID"] = employeeID
	}

	collection := h.DB.Collection("asset_requests")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query asset requests"})
		return
	}
	defer cursor.Close(context.Background())

	var requests []models.AssetRequest
	if err = cursor.All(context.Background(), &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode asset requests"})
		return
	}

	if requests == nil {
		requests = []models.AssetRequest{}
	}

	page := listquery.Apply(requests, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.AssetRequest]{
		SearchText: func(r models.AssetRequest) string {
			return r.RequestID + " " + r.EmployeeID + " " + r.Description
		},
		Status: func(r models.AssetRequest) string { return r.Status },
		Less:   assetRequestLess,
	})

	c.JSON(http.StatusOK, page)
}

func assetRequestLess(a, b models.AssetRequest, sortBy string) bool {
	switch sortBy {
	case "status":
		return a.Status < b.Status
	case "employeeId":
		return a.EmployeeID < b.EmployeeID
	case "requestId":
		return a.RequestID < b.RequestID
	default: // createdAt
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// GetAssetRequestByID lấy chi tiết một yêu cầu theo requestID.
func (h *AssetRequestHandler) GetAssetRequestByID(c *gin.Context) {
	requestID := c.Param("id")
	collection := h.DB.Collection("asset_requests")
	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset request"})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

type UpdateAssetRequestPayload struct {
	Description string `json:"description" binding:"required"`
}

// UpdateAssetRequest chỉ cho sửa mô tả, và chỉ khi yêu cầu còn PENDING.
func (h *AssetRequestHandler) UpdateAssetRequest(c *gin.Context) {
	requestID := c.Param("id")

	var payload UpdateAssetRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("asset_requests")
	result, err := collection.UpdateOne(
		context.Background(),
		bson.M{"requestID": requestID, "status": status.RequestPending},
		bson.M{"$set": bson.M{"description": payload.Description, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset request"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Asset request not found or no longer editable"})
		return
	}

	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated asset request"})
		return
	}

	h.Hub.Publish(socket.EventRequestUpdated, request)

	c.JSON(http.StatusOK, request)
}

// DeleteAssetRequest xóa một yêu cầu còn PENDING.
func (h *AssetRequestHandler) DeleteAssetRequest(c *gin.Context) {
	requestID := c.Param("id")

	collection := h.DB.Collection("asset_requests")
	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset request"})
		}
		return
	}
	if request.Status != status.RequestPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending requests can be deleted"})
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"requestID": requestID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset request"})
		return
	}

	h.Hub.Publish(socket.EventRequestDeleted, socket.DeletePayload{ID: request.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Asset request deleted successfully"})
}

// ApproveAssetRequest duyệt-và-cấp-phát cả batch trong một lần gọi.
// Server là nơi duy nhất quyết định trạng thái kết quả; client chỉ gửi số lượng.
func (h *AssetRequestHandler) ApproveAssetRequest(c *gin.Context) {
	requestID := c.Param("id")

	var payload ApproveAssetRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("asset_requests")
	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset request"})
		}
		return
	}

	if request.Status != status.RequestPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending requests can be approved"})
		return
	}

	// 1. Lấy tồn kho hiện tại của các asset liên quan
	assetIDs := make([]string, 0, len(request.Items))
	for _, item := range request.Items {
		assetIDs = append(assetIDs, item.AssetID)
	}

	assetCollection := h.DB.Collection("assets")
	cursor, err := assetCollection.Find(context.Background(), bson.M{"assetID": bson.M{"$in": assetIDs}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query asset stock"})
		return
	}
	defer cursor.Close(context.Background())

	var assets []models.Asset
	if err = cursor.All(context.Background(), &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assets"})
		return
	}

	stock := make(workflow.Stock, len(assets))
	for _, a := range assets {
		stock[a.AssetID] = a.Quantity
	}

	// 2. Tính toán thuần: trạng thái item mới + lượng trừ kho
	result, err := workflow.ApplyApproval(request.Items, stock, payload.IssuedItems)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus := status.AggregateRequestStatus(result.Items)
	if !status.CanTransitionRequest(request.Status, newStatus) {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Request cannot move from %s to %s", request.Status, newStatus)})
		return
	}

	// 3. Cập nhật nguyên tử: chỉ khi request vẫn còn PENDING
	// (hai admin duyệt cùng lúc thì người chậm hơn nhận 409).
	updateResult, err := collection.UpdateOne(
		context.Background(),
		bson.M{"requestID": requestID, "status": status.RequestPending},
		bson.M{"$set": bson.M{"items": result.Items, "status": newStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during approval"})
		return
	}
	if updateResult.ModifiedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This request was just processed by another admin"})
		return
	}

	// 4. Trừ kho
	for assetID, qty := range result.Deductions {
		_, err := assetCollection.UpdateOne(
			context.Background(),
			bson.M{"assetID": assetID},
			bson.M{"$inc": bson.M{"quantity": -qty}, "$set": bson.M{"updatedAt": time.Now()}},
		)
		if err != nil {
			log.Printf("CRITICAL: Request %s approved but failed to deduct stock for asset %s. Please check manually.", requestID, assetID)
		}
	}

	request.Items = result.Items
	request.Status = newStatus
	request.UpdatedAt = time.Now()

	// 5. Phát sự kiện cho các dashboard đang mở
	h.Hub.Publish(socket.EventRequestStatusChanged, request)
	for _, item := range result.Items {
		if item.ProcurementStatus == status.ProcurementRequired {
			h.Hub.Publish(socket.EventRequestItemProcurementNeeded, request)
			break
		}
	}

	c.JSON(http.StatusOK, request)
}

// RejectAssetRequest từ chối một yêu cầu còn PENDING. Không cần payload.
func (h *AssetRequestHandler) RejectAssetRequest(c *gin.Context) {
	requestID := c.Param("id")

	collection := h.DB.Collection("asset_requests")
	updateResult, err := collection.UpdateOne(
		context.Background(),
		bson.M{"requestID": requestID, "status": status.RequestPending},
		bson.M{"$set": bson.M{"status": status.RequestRejected, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during rejection"})
		return
	}
	if updateResult.ModifiedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Asset request not found or no longer pending"})
		return
	}

	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated asset request"})
		return
	}

	h.Hub.Publish(socket.EventRequestStatusChanged, request)

	c.JSON(http.StatusOK, request)
}

// MarkItemOrdered đánh dấu một item REQUIRED là đã đặt mua (ORDERED).
func (h *AssetRequestHandler) MarkItemOrdered(c *gin.Context) {
	requestID := c.Param("id")
	itemID := c.Param("itemId")

	collection := h.DB.Collection("asset_requests")
	request, item, err := h.findRequestItem(requestID, itemID)
	if err != nil {
		respondRequestItemError(c, err)
		return
	}

	if !status.CanTransitionProcurement(item.ProcurementStatus, status.ProcurementOrdered) {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Item cannot be marked as ordered from procurement status %s", item.ProcurementStatus)})
		return
	}

	// Filter khớp cả trạng thái item: người đến sau khi trạng thái đã bị
	// chuyển sẽ không update được gì và nhận 409 (như ApproveAssetRequest).
	updateResult, err := collection.UpdateOne(
		context.Background(),
		itemInStateFilter(requestID, itemID, item.ProcurementStatus),
		bson.M{"$set": bson.M{"items.$.procurementStatus": status.ProcurementOrdered, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark item as ordered"})
		return
	}
	if updateResult.ModifiedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This item was just processed by another admin"})
		return
	}

	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated asset request"})
		return
	}

	h.Hub.Publish(socket.EventRequestItemUpdated, request)

	c.JSON(http.StatusOK, request)
}

// CompleteItemProcurement nhận hàng mua sắm về: cộng kho rồi cấp ngay phần còn thiếu.
func (h *AssetRequestHandler) CompleteItemProcurement(c *gin.Context) {
	requestID := c.Param("id")
	itemID := c.Param("itemId")

	var payload CompleteProcurementPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, item, err := h.findRequestItem(requestID, itemID)
	if err != nil {
		respondRequestItemError(c, err)
		return
	}

	// Số lượng tồn kho hiện tại của asset
	assetCollection := h.DB.Collection("assets")
	var asset models.Asset
	if err := assetCollection.FindOne(context.Background(), bson.M{"assetID": item.AssetID}).Decode(&asset); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Asset with ID '%s' not found", item.AssetID)})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	result, err := workflow.CompleteProcurement(item, asset.Quantity, payload.ProcuredQuantity)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	// Thay item đã tính xong vào danh sách rồi tổng hợp lại trạng thái request
	for i := range request.Items {
		if request.Items[i].ItemID == itemID {
			request.Items[i] = result.Item
			break
		}
	}
	newStatus := status.AggregateRequestStatus(request.Items)

	// Chỉ thằng thắng được update (item vẫn còn ORDERED) mới được cộng kho;
	// hai admin bấm nhận hàng cùng lúc mà không có guard này sẽ $inc hai lần.
	collection := h.DB.Collection("asset_requests")
	updateResult, err := collection.UpdateOne(
		context.Background(),
		itemInStateFilter(requestID, itemID, status.ProcurementOrdered),
		bson.M{"$set": bson.M{"items": request.Items, "status": newStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset request"})
		return
	}
	if updateResult.ModifiedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This item was just processed by another admin"})
		return
	}

	if result.StockDelta != 0 {
		_, err := assetCollection.UpdateOne(
			context.Background(),
			bson.M{"assetID": item.AssetID},
			bson.M{"$inc": bson.M{"quantity": result.StockDelta}, "$set": bson.M{"updatedAt": time.Now()}},
		)
		if err != nil {
			log.Printf("CRITICAL: Procurement for item %s completed but failed to adjust stock for asset %s. Please check manually.", itemID, item.AssetID)
		}
	}

	request.Status = newStatus
	request.UpdatedAt = time.Now()

	h.Hub.Publish(socket.EventRequestItemUpdated, request)
	h.Hub.Publish(socket.EventRequestStatusChanged, request)

	c.JSON(http.StatusOK, request)
}

var errRequestItemNotFound = fmt.Errorf("request item not found")

// itemInStateFilter khớp request chứa item đang ở đúng trạng thái mua sắm.
// $elemMatch buộc itemID và procurementStatus phải cùng nằm trên một phần tử,
// nên UpdateOne chỉ trúng khi trạng thái chưa bị admin khác chuyển đi.
func itemInStateFilter(requestID, itemID, procurementStatus string) bson.M {
	return bson.M{
		"requestID": requestID,
		"items": bson.M{
			"$elemMatch": bson.M{
				"itemID":            itemID,
				"procurementStatus": procurementStatus,
			},
		},
	}
}

// findRequestItem tìm request theo requestID và item nhúng theo itemID.
func (h *AssetRequestHandler) findRequestItem(requestID, itemID string) (models.AssetRequest, models.AssetRequestItem, error) {
	collection := h.DB.Collection("asset_requests")
	var request models.AssetRequest
	if err := collection.FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&request); err != nil {
		return models.AssetRequest{}, models.AssetRequestItem{}, err
	}
	for _, item := range request.Items {
		if item.ItemID == itemID {
			return request, item, nil
		}
	}
	return request, models.AssetRequestItem{}, errRequestItemNotFound
}

func respondRequestItemError(c *gin.Context, err error) {
	switch err {
	case mongo.ErrNoDocuments:
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset request not found"})
	case errRequestItemNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Request item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset request"})
	}
}
