package dashboard

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	dashboards := r.Group("/dashboard")
	{
		dashboards.GET("/stats", h.GetStats)
	}
}
