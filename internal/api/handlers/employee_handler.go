// server/internal/api/handlers/employee_handler.go
package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"aquafarm-hrm-api-server/internal/listquery"
	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/s3"
	"aquafarm-hrm-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Giới hạn ảnh hồ sơ nhân viên.
const maxPhotoSize = 5 << 20 // 5 MB

type EmployeeHandler struct {
	DB         *mongo.Database
	Hub        *socket.Hub
	S3Uploader *s3.Uploader
}

// uploadEmployeePhoto kiểm tra file ảnh rồi đẩy lên S3, trả về URL.
func (h *EmployeeHandler) uploadEmployeePhoto(c *gin.Context, employeeID string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxPhotoSize {
		return "", fmt.Errorf("photo is larger than %d bytes", maxPhotoSize)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := ""
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	default:
		return "", fmt.Errorf("unsupported photo type %q, only JPEG and PNG are accepted", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	objectKey := fmt.Sprintf("employees/%s/photo-%s%s", employeeID, uuid.New().String()[:8], ext)
	return h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
}

// CreateEmployee tạo hồ sơ nhân viên mới. Nhận multipart form,
// ảnh đại diện (field "photo") là tùy chọn.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	position := c.PostForm("position")
	if name == "" || email == "" || position == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and position are required"})
		return
	}

	collection := h.DB.Collection("employees")

	count, err := collection.CountDocuments(context.Background(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for employee"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Employee with this email already exists"})
		return
	}

	newEmployee := models.Employee{
		EmployeeID: fmt.Sprintf("EMP-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:       name,
		Email:      email,
		Phone:      c.PostForm("phone"),
		Position:   position,
		SiteID:     c.PostForm("siteId"),
		Status:     "ACTIVE",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if fileHeader, err := c.FormFile("photo"); err == nil {
		photoURL, err := h.uploadEmployeePhoto(c, newEmployee.EmployeeID, fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newEmployee.PhotoURL = photoURL
	}

	result, err := collection.InsertOne(context.Background(), newEmployee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newEmployee.ID = oid
	}

	h.Hub.Publish(socket.EventEmployeeCreated, newEmployee)

	c.JSON(http.StatusCreated, newEmployee)
}

// GetAllEmployees lấy danh sách nhân viên, có lọc/sắp xếp/phân trang.
func (h *EmployeeHandler) GetAllEmployees(c *gin.Context) {
	filter := bson.M{}
	if siteID := c.Query("siteId"); siteID != "" {
		filter["siteID"] = siteID
	}

	collection := h.DB.Collection("employees")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query employees"})
		return
	}
	defer cursor.Close(context.Background())

	var employees []models.Employee
	if err = cursor.All(context.Background(), &employees); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode employees"})
		return
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	page := listquery.Apply(employees, listquery.ParamsFromQuery(c.Query), listquery.Accessors[models.Employee]{
		SearchText: func(e models.Employee) string { return e.EmployeeID + " " + e.Name + " " + e.Email + " " + e.Position },
		Status:     func(e models.Employee) string { return e.Status },
		Less: func(a, b models.Employee, sortBy string) bool {
			switch sortBy {
			case "name":
				return a.Name < b.Name
			case "position":
				return a.Position < b.Position
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		},
	})

	c.JSON(http.StatusOK, page)
}

// GetEmployeeByID lấy hồ sơ nhân viên theo employeeID.
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	employeeID := c.Param("id")

	collection := h.DB.Collection("employees")
	var employee models.Employee
	err := collection.FindOne(context.Background(), bson.M{"employeeID": employeeID}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee cập nhật hồ sơ nhân viên (multipart, ảnh mới là tùy chọn).
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	employeeID := c.Param("id")

	collection := h.DB.Collection("employees")
	var employee models.Employee
	if err := collection.FindOne(context.Background(), bson.M{"employeeID": employeeID}).Decode(&employee); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	for field, key := range map[string]string{
		"name":     "name",
		"email":    "email",
		"phone":    "phone",
		"position": "position",
		"siteId":   "siteID",
		"status":   "status",
	} {
		if v := c.PostForm(field); v != "" {
			update[key] = v
		}
	}

	if fileHeader, err := c.FormFile("photo"); err == nil {
		photoURL, err := h.uploadEmployeePhoto(c, employeeID, fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["photoURL"] = photoURL
	}

	if _, err := collection.UpdateOne(context.Background(), bson.M{"employeeID": employeeID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	if err := collection.FindOne(context.Background(), bson.M{"employeeID": employeeID}).Decode(&employee); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated employee"})
		return
	}

	h.Hub.Publish(socket.EventEmployeeUpdated, employee)

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee xóa hồ sơ nhân viên theo employeeID.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("id")

	collection := h.DB.Collection("employees")
	var employee models.Employee
	if err := collection.FindOne(context.Background(), bson.M{"employeeID": employeeID}).Decode(&employee); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"employeeID": employeeID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	h.Hub.Publish(socket.EventEmployeeDeleted, socket.DeletePayload{ID: employee.ID.Hex()})

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
