// server/cmd/api/main.go
package main

import (
	"log"
	"time"

	"aquafarm-hrm-api-server/config"
	"aquafarm-hrm-api-server/internal/api/routes"
	"aquafarm-hrm-api-server/internal/auth"
	"aquafarm-hrm-api-server/internal/database"
	"aquafarm-hrm-api-server/internal/s3"
	"aquafarm-hrm-api-server/internal/socket"

	"github.com/redis/go-redis/v9"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Nạp .env nếu có (local dev); production dùng biến môi trường thật.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 2. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	auth.SetSecret(cfg.JWT.Secret)

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid jwt.expiration %q: %v", cfg.JWT.Expiration, err)
	}

	// 3. Kết nối MongoDB
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// 4. Đảm bảo tài khoản superadmin tồn tại
	if err := database.SeedSuperAdmin(db); err != nil {
		log.Fatalf("Failed to seed superadmin account: %v", err)
	}

	// 5. Khởi tạo S3 uploader cho ảnh nhân viên và file đính kèm
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	}

	// 6. Redis chỉ dùng cho rate limiter; không cấu hình thì limiter
	// rơi về store trong bộ nhớ.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// 7. Khởi tạo WebSocket hub
	wsHub := socket.NewHub()

	// 8. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(cfg, db, s3Uploader, wsHub, rdb, jwtExpiration)

	// 9. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
