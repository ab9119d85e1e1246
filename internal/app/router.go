package app

import (
	"zenplan_backend/internal/config"
	"zenplan_backend/internal/middleware"
	"zenplan_backend/internal/model"
	"zenplan_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/motivation", c.motivation.GetCurrentMotivation)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 资料与偏好
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)
		authGroup.GET("/profile/theme", c.user.GetTheme)
		authGroup.PUT("/profile/theme", c.user.SetTheme)

		// 任务
		authGroup.GET("/tasks", c.task.GetTasks)
		authGroup.POST("/tasks", c.task.CreateTask)
		authGroup.PUT("/tasks/:id", c.task.UpdateTask)
		authGroup.PATCH("/tasks/:id/status", c.task.SetTaskStatus)
		authGroup.PATCH("/tasks/:id/progress", c.task.SetTaskProgress)
		authGroup.DELETE("/tasks/:id", c.task.DeleteTask)

		// 周目标
		authGroup.GET("/goals", c.goal.GetGoals)
		authGroup.POST("/goals", c.goal.CreateGoal)
		authGroup.PATCH("/goals/:id/toggle", c.goal.ToggleGoal)
		authGroup.DELETE("/goals/:id", c.goal.DeleteGoal)

		// 心情
		authGroup.GET("/moods", c.mood.GetMoods)
		authGroup.POST("/moods", c.mood.RecordMood)

		// 统计与连击
		authGroup.GET("/stats", c.stats.GetStats)
		authGroup.GET("/stats/board", c.stats.GetBoard)
		authGroup.GET("/stats/daily", c.stats.GetDailyStats)
		authGroup.GET("/stats/streak", c.stats.GetStreak)

		// 本地/云端状态归并
		authGroup.POST("/sync", c.sync.Sync)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		admin.GET("/users", middleware.RoleMiddleware(model.RoleAdmin), c.user.ListUsers)
		admin.PUT("/users/:id/role", middleware.RoleMiddleware(model.RoleSuperAdmin), c.user.ChangeRole)
		admin.PUT("/users/:id/disable", middleware.RoleMiddleware(model.RoleAdmin), c.user.SetDisabled)

		admin.GET("/motivations", middleware.RoleMiddleware(model.RoleAdmin), c.motivation.GetAllMotivations)
		admin.POST("/motivations", middleware.RoleMiddleware(model.RoleAdmin), c.motivation.CreateMotivation)
		admin.PUT("/motivations/:id", middleware.RoleMiddleware(model.RoleAdmin), c.motivation.UpdateMotivation)
		admin.DELETE("/motivations/:id", middleware.RoleMiddleware(model.RoleAdmin), c.motivation.DeleteMotivation)
	}
}
