package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/config"
)

// CORS returns a CORS middleware configured from the server settings
func CORS(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Requested-With", RequestIDHeader,
		},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentialed requests cannot use the wildcard header, so reflect
		// the caller's origin instead
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}
