package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shipping-management/internal/config"
)

// alwaysExposed lets browser clients read the request id and the label file name.
var alwaysExposed = []string{RequestIDHeader, "Content-Disposition"}

func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	exposed := slices.Clone(cfg.ExposedHeaders)
	for _, h := range alwaysExposed {
		if !slices.Contains(exposed, h) {
			exposed = append(exposed, h)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	})
}
