package app

import (
	"net/http"
	"os"

	"github.com/rohinisinghsenger-max/hrms-portal/internal/attendance"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/employee"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/middleware"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "2.0.0"

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	// 1. Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(&employee.Employee{}, &attendance.Attendance{}); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// 2. Cross-cutting middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.CORS(os.Getenv("CORS_ORIGINS")))

	// 3. Service banner + health
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "HRMS Lite API",
			"version": version,
			"health":  "/health",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"code":    apperror.CodeServiceUnavailable,
				"version": version,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	// 4. Modules & routes
	registerModules(router, db, gormDB, rdb, logger)

	return nil
}
