package main

import (
  "fmt"
  "os"
  "time"
  "github.com/easylearn/easylearn-backend/internal/clients/redis"
  "github.com/easylearn/easylearn-backend/internal/db"
  "github.com/easylearn/easylearn-backend/internal/handlers"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/middleware"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/server"
  "github.com/easylearn/easylearn-backend/internal/services"
  "github.com/easylearn/easylearn-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  categoryRepo := repos.NewCategoryRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)
  unitRepo := repos.NewUnitRepo(thePG, log)
  lessonRepo := repos.NewLessonRepo(thePG, log)
  quizRepo := repos.NewQuizRepo(thePG, log)
  questionRepo := repos.NewQuestionRepo(thePG, log)
  matchingGameRepo := repos.NewMatchingGameRepo(thePG, log)
  enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
  quizAttemptRepo := repos.NewQuizAttemptRepo(thePG, log)
  lessonProgressRepo := repos.NewLessonProgressRepo(thePG, log)
  groupRepo := repos.NewGroupRepo(thePG, log)
  membershipRepo := repos.NewMembershipRepo(thePG, log)
  noticeRepo := repos.NewNoticeRepo(thePG, log)

  // Redis (optional)
  leaderboardCache, err := redis.NewLeaderboardCache(log)
  if err != nil {
    log.Warn("Leaderboard cache unavailable, computing standings per request", "error", err)
    leaderboardCache = nil
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  catalogService := services.NewCatalogService(thePG, log, categoryRepo, courseRepo, unitRepo, lessonRepo, quizRepo, matchingGameRepo)
  accessService := services.NewAccessService(thePG, log, courseRepo, unitRepo, lessonRepo, quizRepo, matchingGameRepo, enrollmentRepo)
  scoringService := services.NewScoringService(thePG, log, unitRepo, courseRepo, quizRepo, questionRepo, quizAttemptRepo)
  attemptService := services.NewAttemptService(thePG, log, quizRepo, lessonRepo, quizAttemptRepo, lessonProgressRepo, groupRepo, leaderboardCache)
  groupService := services.NewGroupService(thePG, log, groupRepo, membershipRepo, courseRepo, leaderboardCache)
  leaderboardService := services.NewLeaderboardService(thePG, log, groupRepo, membershipRepo, quizRepo, quizAttemptRepo, leaderboardCache)
  dashboardService := services.NewDashboardService(thePG, log, userRepo, courseRepo, quizAttemptRepo, lessonProgressRepo, noticeRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  catalogHandler := handlers.NewCatalogHandler(catalogService, accessService)
  quizHandler := handlers.NewQuizHandler(catalogService, attemptService)
  progressHandler := handlers.NewProgressHandler(attemptService, scoringService)
  groupHandler := handlers.NewGroupHandler(groupService, leaderboardService)
  dashboardHandler := handlers.NewDashboardHandler(dashboardService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    CatalogHandler:   catalogHandler,
    QuizHandler:      quizHandler,
    ProgressHandler:  progressHandler,
    GroupHandler:     groupHandler,
    DashboardHandler: dashboardHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
