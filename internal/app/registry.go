package app

import (
	"database/sql"
	"os"
	"time"

	"go-madrasa/internal/attendance"
	"go-madrasa/internal/billing"
	"go-madrasa/internal/messaging/kafka"
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/payroll"
	"go-madrasa/internal/permission"
	"go-madrasa/internal/rates"
	"go-madrasa/internal/rbac"
	"go-madrasa/internal/student"

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
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	billingRepo := billing.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	permissionRepo := permission.NewRepository(gormDB)
	ratesRepo := rates.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	salaryCache := payroll.NewSalaryCache(rdb, 5*time.Minute)

	attendanceService := attendance.NewService(db, attendanceRepo)
	billingService := billing.NewService(db, billingRepo)
	permissionService := permission.NewService(db, permissionRepo)
	ratesService := rates.NewService(db, ratesRepo, salaryCache)
	studentService := student.NewService(db, studentRepo)

	gateway := payroll.NewHTTPGateway(os.Getenv("PAYMENT_API_URL"), os.Getenv("PAYMENT_API_KEY"))
	payrollService := payroll.NewService(db, payrollRepo, ratesService, outboxRepo, salaryCache, gateway, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	billingHandler := billing.NewHandler(billingService)
	payrollHandler := payroll.NewHandler(payrollService)
	permissionHandler := permission.NewHandler(permissionService)
	ratesHandler := rates.NewHandler(ratesService)
	studentHandler := student.NewHandler(studentService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		billing.RegisterRoutes(api, billingHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		permission.RegisterRoutes(api, permissionHandler, rbacService)
		rates.RegisterRoutes(api, ratesHandler, rbacService)
		student.RegisterRoutes(api, studentHandler, rbacService)
	}

	return nil
}
