package app

import (
	"database/sql"

	"github.com/rohinisinghsenger-max/hrms-portal/internal/attendance"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/dashboard"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, rdb, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, logger)
	dashboardService := dashboard.NewService(employeeRepo, attendanceRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}
}
