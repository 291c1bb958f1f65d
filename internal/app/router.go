package app

import (
	"questionnaire_backend/docs"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/middleware"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)

		a.registerQuestionnaireRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
		a.registerAssignmentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}
}

// registerQuestionnaireRoutes 问卷的编辑权限由服务层按所有者判断
func (a *App) registerQuestionnaireRoutes(group *gin.RouterGroup, c *controllers) {
	staff := middleware.RoleMiddleware(model.Instructor, model.TeachingAssistant)

	questionnaires := group.Group("/questionnaires")
	{
		questionnaires.GET("", c.questionnaire.List)
		questionnaires.POST("", staff, c.questionnaire.Create)
		questionnaires.GET("/:id", c.questionnaire.Get)
		questionnaires.PUT("/:id", staff, c.questionnaire.Update)
		questionnaires.DELETE("/:id", staff, c.questionnaire.Delete)
		questionnaires.POST("/:id/copy", staff, c.questionnaire.Copy)
		questionnaires.POST("/:id/toggle-access", staff, c.questionnaire.ToggleAccess)
		questionnaires.POST("/:id/questions", staff, c.questionnaire.AddQuestions)
		questionnaires.DELETE("/:id/questions/:qid", staff, c.questionnaire.RemoveQuestion)
		questionnaires.GET("/:id/advice", c.questionnaire.ListAdvice)
		questionnaires.GET("/:id/max-score", c.questionnaire.MaxScore)
		questionnaires.POST("/:id/weighted-score", c.questionnaire.WeightedScore)
		questionnaires.GET("/:id/export", c.questionnaire.Export)
		questionnaires.POST("/:id/import", staff, c.questionnaire.Import)
	}

	group.PUT("/questions/:qid/advice", staff, c.questionnaire.SaveAdvice)
}

func (a *App) registerQuizRoutes(group *gin.RouterGroup, c *controllers) {
	quizzes := group.Group("/quizzes")
	{
		quizzes.GET("/new", c.quiz.New)
		quizzes.POST("", c.quiz.Create)
		quizzes.GET("/:id", c.quiz.View)
		quizzes.GET("/:id/edit", c.quiz.Edit)
		quizzes.PUT("/:id", c.quiz.Update)
	}
}

func (a *App) registerAssignmentRoutes(group *gin.RouterGroup, c *controllers) {
	staff := middleware.RoleMiddleware(model.Instructor, model.TeachingAssistant)

	assignments := group.Group("/assignments")
	{
		assignments.GET("/:id/questionnaires", c.assignment.ListQuestionnaires)
		assignments.POST("/:id/questionnaires/:qid", staff, c.assignment.Link)
		assignments.DELETE("/:id/questionnaires/:qid", staff, c.assignment.Unlink)
	}
}
