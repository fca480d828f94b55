package middleware

import (
	"strings"
	"time"

	"noteshare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the browser client to call the API from its
// own origin. Origins come from CORS_ORIGINS (comma-separated).
func CORSMiddleware() gin.HandlerFunc {
	origins := strings.Split(
		utils.GetEnvAsString("CORS_ORIGINS", "http://localhost:3000"), ",")

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
