// server/internal/api/middleware/ratelimit.go
package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit giới hạn tần suất gọi (dùng cho /auth/login).
// Có Redis thì dùng store Redis để các instance chia sẻ bộ đếm,
// không thì rơi về memory store.
func RateLimit(rdb *redis.Client, formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Fatalf("Invalid rate limit format %q: %v", formatted, err)
	}

	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStore(rdb)
		if err != nil {
			log.Fatalf("Failed to create redis rate limit store: %v", err)
		}
	} else {
		store = memory.NewStore()
	}
	instance := limiter.New(store, rate)

	limiterMiddleware := stdlib.NewMiddleware(instance)

	return func(c *gin.Context) {
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if c.Writer.Status() == http.StatusTooManyRequests {
			c.Abort()
			return
		}
	}
}
