package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/config"
	"github.com/sandytim520-svg/courseselection/internal/api/handler"
	"github.com/sandytim520-svg/courseselection/internal/api/middleware"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/service"
	"github.com/sandytim520-svg/courseselection/pkg/jwt"
	"github.com/sandytim520-svg/courseselection/pkg/redis"
)

// 公开认证端点的速率限制参数（滑动窗口）
const (
	loginRateLimit  = 10
	forgotRateLimit = 5
	rateLimitWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist service.TokenBlacklist,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Import.MaxFileSize))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, loginRateLimit, rateLimitWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/forgot-password/verify",
				middleware.RateLimit(rdb, forgotRateLimit, rateLimitWindow), h.Auth.ForgotPasswordVerify)
			auth.POST("/forgot-password/reset",
				middleware.RateLimit(rdb, forgotRateLimit, rateLimitWindow), h.Auth.ForgotPasswordReset)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/me", h.Auth.UpdateProfile)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.Search)
				courses.GET("/export", h.Course.Export)
				courses.GET("/:id", h.Course.Get)
				courses.POST("", middleware.RoleAuth(model.RoleAdmin), h.Course.Create)
				courses.POST("/import", middleware.RoleAuth(model.RoleAdmin), h.Course.Import)
				courses.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Course.Update)
				courses.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Course.Delete)
			}

			// 检索条件下拉数据
			authorized.GET("/semesters", h.Course.ListSemesters)
			authorized.GET("/departments", h.Course.ListDepartments)

			// 选课模块
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("", h.Enrollment.List)
				enrollments.POST("", h.Enrollment.Enroll)
				enrollments.DELETE("/:course_id", h.Enrollment.Drop)
			}

			// 用户管理模块（管理员）
			users := authorized.Group("/users")
			users.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}
		}
	}

	return r
}
