package app

import (
	"tryout_lms_backend/docs"
	"tryout_lms_backend/internal/config"
	"tryout_lms_backend/internal/middleware"
	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由（无需登录）
	a.registerPublicRoutes(router, c)

	// 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 管理端路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/announcements", c.announcement.List)
		public.GET("/announcements/:id", c.announcement.Get)
		public.GET("/scholarships", c.scholarship.List)
		public.GET("/scholarships/:id", c.scholarship.Get)
		public.GET("/jobs", c.job.List)
		public.GET("/jobs/:id", c.job.Get)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	// 用户
	group.GET("/users/me", c.user.GetProfile)
	group.PUT("/users/me", c.user.UpdateProfile)
	group.PUT("/users/me/password", c.user.ChangePassword)

	// 试卷与答卷
	group.GET("/tryouts", c.tryout.List)
	group.GET("/tryouts/:id", c.tryout.GetForStudent)
	group.POST("/tryouts/:id/attempts", c.attempt.StartAttempt)
	group.GET("/attempts", c.attempt.ListAttempts)
	group.GET("/attempts/:id", c.attempt.GetAttempt)
	group.PUT("/attempts/:id/answers", c.attempt.SubmitAnswer)
	group.POST("/attempts/:id/finish", c.attempt.FinishAttempt)

	// 课程
	group.GET("/courses", c.course.List)
	group.GET("/courses/:id", c.course.Get)

	// 文档
	group.GET("/documents", c.document.List)
	group.GET("/documents/:id", c.document.Get)
	group.GET("/documents/:id/download", c.document.Download)

	// 通知
	group.GET("/notifications", c.notification.List)
	group.PUT("/notifications/:id/read", c.notification.MarkRead)
	group.POST("/notifications/tokens", c.notification.RegisterToken)
	group.DELETE("/notifications/tokens/:token", c.notification.UnregisterToken)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		// 用户管理
		admin.GET("/users", c.user.List)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		// 试卷编排
		admin.POST("/tryouts", c.tryout.Create)
		admin.GET("/tryouts/:id", c.tryout.GetFull)
		admin.PUT("/tryouts/:id", c.tryout.Update)
		admin.DELETE("/tryouts/:id", c.tryout.Delete)
		admin.POST("/tryouts/:id/questions", c.tryout.AddQuestion)
		admin.PUT("/questions/:questionId", c.tryout.UpdateQuestion)
		admin.DELETE("/questions/:questionId", c.tryout.DeleteQuestion)

		// 课程管理
		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)
		admin.POST("/courses/:id/materials", c.course.AddMaterial)
		admin.DELETE("/materials/:materialId", c.course.DeleteMaterial)

		// 公告管理
		admin.POST("/announcements", c.announcement.Create)
		admin.PUT("/announcements/:id", c.announcement.Update)
		admin.DELETE("/announcements/:id", c.announcement.Delete)

		// 文档管理
		admin.POST("/documents", c.document.Upload)
		admin.DELETE("/documents/:id", c.document.Delete)

		// 奖学金管理
		admin.POST("/scholarships", c.scholarship.Create)
		admin.PUT("/scholarships/:id", c.scholarship.Update)
		admin.DELETE("/scholarships/:id", c.scholarship.Delete)

		// 招聘管理
		admin.POST("/jobs", c.job.Create)
		admin.PUT("/jobs/:id", c.job.Update)
		admin.DELETE("/jobs/:id", c.job.Delete)
	}
}
