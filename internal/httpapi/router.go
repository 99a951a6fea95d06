// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusware/unihub/pkg/types"
)

// NewRouter wires the API routes and CORS policy.
func NewRouter(h *Handler, cfg types.ServerConfig) *gin.Engine {
	r := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "X-User-ID", "X-User-Role", "X-User-Departments", "X-User-Courses",
		},
		MaxAge: 12 * time.Hour,
	}))

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api/v1")
	{
		api.GET("/resources/search", h.Search)
		api.POST("/resources", h.Upload)
		api.POST("/resources/import", h.Import)
		api.GET("/resources/:id", h.Get)
		api.POST("/resources/:id/rate", h.Rate)
		api.POST("/resources/:id/download", h.Download)
		api.POST("/resources/:id/share", h.Share)
	}

	return r
}
