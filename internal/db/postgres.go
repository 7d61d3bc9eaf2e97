package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
  "github.com/easylearn/easylearn-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "easylearn", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to postgres: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := AutoMigrate(s.db)
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

// AutoMigrate creates every table of the content and progress model. Package
// tests reuse it against an in-memory sqlite database.
func AutoMigrate(gormDB *gorm.DB) error {
  return gormDB.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Category{},
    &types.Course{},
    &types.Unit{},
    &types.Lesson{},
    &types.Quiz{},
    &types.Question{},
    &types.Choice{},
    &types.MatchingGame{},
    &types.GamePair{},
    &types.UserEnrollment{},
    &types.UserQuizAttempt{},
    &types.UserLessonProgress{},
    &types.LearningGroup{},
    &types.GroupMembership{},
    &types.Notice{},
    &types.Promotion{},
  )
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
