package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/easylearn/easylearn-backend/internal/handlers"
  "github.com/easylearn/easylearn-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  CatalogHandler    *handlers.CatalogHandler
  QuizHandler       *handlers.QuizHandler
  ProgressHandler   *handlers.ProgressHandler
  GroupHandler      *handlers.GroupHandler
  DashboardHandler  *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  router.POST("/refresh", cfg.AuthHandler.Refresh)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // Catalog
  protected.GET("/categories", cfg.CatalogHandler.ListCategories)
  protected.GET("/courses", cfg.CatalogHandler.ListCourses)
  protected.GET("/courses/:id", cfg.CatalogHandler.GetCourse)
  protected.GET("/units/:id", cfg.CatalogHandler.GetUnit)
  protected.POST("/courses/:id/enroll", cfg.CatalogHandler.Enroll)
  protected.GET("/enrollments", cfg.CatalogHandler.MyEnrollments)
  protected.GET("/my-courses", cfg.CatalogHandler.MyCourses)
  // Quizzes & games
  protected.GET("/quizzes/:id", cfg.QuizHandler.GetQuiz)
  protected.POST("/quizzes/:id/attempt", cfg.QuizHandler.SubmitAttempt)
  protected.GET("/quizzes/:id/attempt", cfg.QuizHandler.GetMyAttempt)
  protected.GET("/games/:id", cfg.QuizHandler.GetMatchingGame)
  // Progress & scoring
  protected.POST("/lessons/:id/complete", cfg.ProgressHandler.CompleteLesson)
  protected.GET("/units/:id/points", cfg.ProgressHandler.UnitPoints)
  protected.GET("/courses/:id/points", cfg.ProgressHandler.CoursePoints)
  // Groups
  protected.POST("/groups", cfg.GroupHandler.CreateGroup)
  protected.GET("/groups", cfg.GroupHandler.ListMyGroups)
  protected.GET("/groups/:id", cfg.GroupHandler.GetGroup)
  protected.POST("/groups/:id/join", cfg.GroupHandler.JoinGroup)
  protected.POST("/groups/:id/leave", cfg.GroupHandler.LeaveGroup)
  protected.PUT("/groups/:id/courses", cfg.GroupHandler.UpdateGroupCourses)
  protected.POST("/groups/:id/promote", cfg.GroupHandler.PromoteMember)
  protected.GET("/groups/:id/leaderboard", cfg.GroupHandler.Leaderboard)
  // Dashboard
  protected.GET("/dashboard", cfg.DashboardHandler.Dashboard)
  protected.GET("/profile", cfg.DashboardHandler.Profile)

  return router
}
