package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/attendance"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/auth"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/department"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/employee"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/employeesalary"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/holiday"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/jobposting"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/leave"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/middleware"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/notification"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/payroll"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac/infra"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/counter"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/user"
)

// BuildAPI migrates the schema, loads RBAC policy and mounts every module on
// router. reg receives the HTTP and leave metrics.
func BuildAPI(ctx context.Context, cfg config.Config, router *gin.Engine, in *Infra, reg *prometheus.Registry) error {
	logger := zap.L().Named("app.api")

	if err := Migrate(in.GormDB); err != nil {
		return err
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(in.GormDB)
	userRepo := user.NewRepository(in.GormDB)
	attendanceRepo := attendance.NewRepository(in.GormDB)
	departmentRepo := department.NewRepository(in.GormDB)
	employeeRepo := employee.NewRepository(in.GormDB)
	employeeSalaryRepo := employeesalary.NewRepository(in.GormDB)
	leaveRepo := leave.NewRepository(in.GormDB)
	holidayRepo := holiday.NewRepository(in.GormDB)
	payrollRepo := payroll.NewRepository(in.GormDB)
	jobPostingRepo := jobposting.NewRepository(in.GormDB)
	notificationRepo := notification.NewRepository(in.GormDB)
	counterRepo := counter.NewRepository(in.GormDB)
	outboxRepo := kafka.NewOutboxRepository(in.DB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModel)
	if err != nil {
		return err
	}
	if err := rbacRepo.SeedDefaults(ctx, rbac.DefaultPermissions); err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWT)
	authService := auth.NewService(userRepo, tokens)
	userService := user.NewService(userRepo)
	attendanceService := attendance.NewService(in.DB, attendanceRepo)
	departmentService := department.NewService(in.DB, departmentRepo, in.Redis)
	employeeService := employee.NewService(in.DB, employeeRepo, counterRepo, outboxRepo, in.Redis)
	employeeSalaryService := employeesalary.NewService(in.DB, employeeSalaryRepo, cfg.Salary.DefaultBase)
	leaveService := leave.NewService(in.DB, leaveRepo, outboxRepo, leave.Options{
		AnnualLimitDays:        cfg.Leave.AnnualLimitDays,
		RequireRejectionReason: cfg.Leave.RequireRejectionReason,
		Metrics:                leave.NewMetrics(reg),
	})
	holidayService := holiday.NewService(in.DB, holidayRepo, in.Redis)
	payrollService := payroll.NewService(in.DB, payrollRepo, outboxRepo)
	jobPostingService := jobposting.NewService(in.DB, jobPostingRepo, in.Redis)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Domain:     cfg.HTTP.CookieDomain,
		Secure:     cfg.HTTP.CookieSecure,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	leaveHandler := leave.NewHandler(leaveService)
	holidayHandler := holiday.NewHandler(holidayService)
	payrollHandler := payroll.NewHandler(payrollService)
	jobPostingHandler := jobposting.NewHandler(jobPostingService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Global middleware ---
	httpMetrics := middleware.NewHTTPMetrics(reg)
	router.Use(gin.Recovery(), middleware.RequestID(), httpMetrics.Middleware())
	router.GET("/metrics", middleware.MetricsHandler(reg))
	router.GET("/healthz", healthHandler(in))

	// --- Routes Registration ---
	authMW := middleware.AuthMiddleware(tokens)
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst))
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		jobposting.RegisterPublicRoutes(api, jobPostingHandler)
	}

	protected := api.Group("")
	protected.Use(authMW, middleware.ContextLogger(zap.L()))
	{
		user.RegisterRoutes(protected, userHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler, rbacService)
		attendance.RegisterRoutes(protected, attendanceHandler, rbacService)
		department.RegisterRoutes(protected, departmentHandler, rbacService)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		employeesalary.RegisterRoutes(protected, employeeSalaryHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService)
		holiday.RegisterRoutes(protected, holidayHandler, rbacService)
		payroll.RegisterRoutes(protected, payrollHandler, rbacService, in.Redis)
		jobposting.RegisterRoutes(protected, jobPostingHandler, rbacService)
		notification.RegisterRoutes(protected, notificationHandler, rbacService)
	}

	logger.Info("api modules registered")
	return nil
}

func healthHandler(in *Infra) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := gin.H{"database": "ok", "redis": "ok"}
		healthy := true

		if err := in.DB.PingContext(ctx); err != nil {
			status["database"] = err.Error()
			healthy = false
		}
		if in.Redis != nil {
			if err := in.Redis.Ping(ctx).Err(); err != nil {
				status["redis"] = err.Error()
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Dependency check failed", status)
			return
		}
		response.Success(c, http.StatusOK, status, nil)
	}
}
