package employee

import (
	"github.com/rohinisinghsenger-max/hrms-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/departments", handler.GetDepartments)
		employees.GET("/:id", handler.GetById)

		employees.POST("", middleware.RateLimitByIP(2, 5), handler.Create)
		employees.PUT("/:id", middleware.RateLimitByIP(2, 5), handler.Update)
		employees.DELETE("/:id", middleware.RateLimitByIP(1, 2), handler.Delete)
	}
}
