package attendance

import (
	"github.com/rohinisinghsenger-max/hrms-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendance")
	{
		attendances.GET("", h.GetAll)
		attendances.GET("/employee/:id", h.GetAllByEmployee)

		attendances.POST("", middleware.RateLimitByIP(5, 10), h.Mark)
		attendances.PUT("/:id", middleware.RateLimitByIP(5, 10), h.Update)
		attendances.DELETE("/:id", middleware.RateLimitByIP(2, 5), h.Delete)
	}
}
