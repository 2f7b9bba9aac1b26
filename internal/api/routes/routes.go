// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"aquafarm-hrm-api-server/config"
	"aquafarm-hrm-api-server/internal/api/handlers"
	"aquafarm-hrm-api-server/internal/api/middleware"
	"aquafarm-hrm-api-server/internal/s3"
	"aquafarm-hrm-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	rdb *redis.Client,
	jwtExpiration time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Khởi tạo các handlers
	userHandler := &handlers.UserHandler{DB: db, JWTExpiration: jwtExpiration}
	assetHandler := &handlers.AssetHandler{DB: db}
	requestHandler := &handlers.AssetRequestHandler{DB: db, Hub: wsHub}
	cageHandler := &handlers.CageHandler{DB: db, Hub: wsHub}
	feedHandler := &handlers.FeedHandler{DB: db, Hub: wsHub}
	medicationHandler := &handlers.MedicationHandler{DB: db, Hub: wsHub}
	labBoxHandler := &handlers.LabBoxHandler{DB: db, Hub: wsHub}
	employeeHandler := &handlers.EmployeeHandler{DB: db, Hub: wsHub, S3Uploader: s3Uploader}
	requisitionHandler := &handlers.RequisitionHandler{DB: db, Hub: wsHub, S3Uploader: s3Uploader}
	statusHandler := &handlers.StatusHandler{}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		// Route cho WebSocket (token đi qua query param)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===

		// Nhóm API authentication. Login bị giới hạn tần suất để chặn brute-force.
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, "10-M"), userHandler.Login)
		}

		// Bảng metadata trạng thái (nhãn + màu), client nào cũng cần nên để public.
		apiV1.GET("/statuses", statusHandler.GetStatuses)

		// === CÁC ROUTE YÊU CẦU XÁC THỰC (PROTECTED) ===

		// Nhóm API quản trị, yêu cầu vai trò "superadmin"
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("superadmin"))
		{
			admin.POST("/users", userHandler.CreateUser)
			admin.GET("/users", userHandler.GetAllUsers)
			admin.PUT("/users/:email/status", userHandler.UpdateUserStatus)
		}

		// Nhóm các API nghiệp vụ chính
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("admin", "employee", "superadmin"))
		{
			// Asset inventory
			assets := businessRoutes.Group("/assets")
			{
				assets.POST("/", assetHandler.CreateAsset)
				assets.GET("/", assetHandler.GetAllAssets)
				assets.GET("/:id", assetHandler.GetAssetByID)
				assets.PUT("/:id", assetHandler.UpdateAsset)
				assets.DELETE("/:id", assetHandler.DeleteAsset)
			}

			// Asset requests và vòng đời duyệt/cấp phát/mua sắm
			requests := businessRoutes.Group("/asset-requests")
			{
				requests.POST("/", requestHandler.CreateAssetRequest)
				requests.GET("/", requestHandler.GetAllAssetRequests)
				requests.GET("/:id", requestHandler.GetAssetRequestByID)
				requests.PATCH("/:id", requestHandler.UpdateAssetRequest)
				requests.DELETE("/:id", requestHandler.DeleteAssetRequest)

				// Các bước duyệt và mua sắm chỉ dành cho admin trở lên.
				adminRequestRoutes := requests.Group("/")
				adminRequestRoutes.Use(middleware.Authorize("admin", "superadmin"))
				{
					adminRequestRoutes.PATCH("/:id/approve", requestHandler.ApproveAssetRequest)
					adminRequestRoutes.PATCH("/:id/reject", requestHandler.RejectAssetRequest)
					adminRequestRoutes.PATCH("/:id/items/:itemId/mark-ordered", requestHandler.MarkItemOrdered)
					adminRequestRoutes.PATCH("/:id/items/:itemId/complete-procurement", requestHandler.CompleteItemProcurement)
				}
			}

			// Cage management
			cages := businessRoutes.Group("/cages")
			{
				cages.POST("/", cageHandler.CreateCage)
				cages.GET("/", cageHandler.GetAllCages)
				cages.GET("/:id", cageHandler.GetCageByID)
				cages.PUT("/:id", cageHandler.UpdateCage)
				cages.DELETE("/:id", cageHandler.DeleteCage)
			}

			// Feed management
			feeds := businessRoutes.Group("/feeds")
			{
				feeds.POST("/", feedHandler.CreateFeed)
				feeds.GET("/", feedHandler.GetAllFeeds)
				feeds.GET("/:id", feedHandler.GetFeedByID)
				feeds.PUT("/:id", feedHandler.UpdateFeed)
				feeds.DELETE("/:id", feedHandler.DeleteFeed)
			}

			// Medication management
			medications := businessRoutes.Group("/medications")
			{
				medications.POST("/", medicationHandler.CreateMedication)
				medications.GET("/", medicationHandler.GetAllMedications)
				medications.GET("/cage/:cageId", medicationHandler.GetMedicationsByCage)
				medications.GET("/:id", medicationHandler.GetMedicationByID)
				medications.PUT("/:id", medicationHandler.UpdateMedication)
				medications.DELETE("/:id", medicationHandler.DeleteMedication)
			}

			// Laboratory boxes
			labBoxes := businessRoutes.Group("/laboratory-boxes")
			{
				labBoxes.POST("/", labBoxHandler.CreateLabBox)
				labBoxes.GET("/", labBoxHandler.GetAllLabBoxes)
				labBoxes.GET("/:id", labBoxHandler.GetLabBoxByID)
				labBoxes.PUT("/:id", labBoxHandler.UpdateLabBox)
				labBoxes.DELETE("/:id", labBoxHandler.DeleteLabBox)
			}

			// Employee management (có upload ảnh qua multipart)
			employees := businessRoutes.Group("/employees")
			{
				employees.POST("/", employeeHandler.CreateEmployee)
				employees.GET("/", employeeHandler.GetAllEmployees)
				employees.GET("/:id", employeeHandler.GetEmployeeByID)
				employees.PUT("/:id", employeeHandler.UpdateEmployee)
				employees.DELETE("/:id", employeeHandler.DeleteEmployee)
			}

			// Requisitions (phiếu vật tư theo công trình)
			requisitions := businessRoutes.Group("/requisitions")
			{
				requisitions.POST("/", requisitionHandler.CreateRequisition)
				requisitions.GET("/", requisitionHandler.GetAllRequisitions)
				requisitions.GET("/:id", requisitionHandler.GetRequisitionByID)
				requisitions.POST("/:id/attachments", requisitionHandler.UploadAttachment)
				requisitions.GET("/:id/attachments", requisitionHandler.GetAttachments)
				requisitions.POST("/:id/comments", requisitionHandler.AddComment)
				requisitions.GET("/:id/comments", requisitionHandler.GetComments)

				statusChangeRoutes := requisitions.Group("/")
				statusChangeRoutes.Use(middleware.Authorize("admin", "superadmin"))
				{
					statusChangeRoutes.PUT("/:id/status", requisitionHandler.UpdateRequisitionStatus)
				}
			}
		}
	}

	return router
}
