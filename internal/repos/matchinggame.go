package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type MatchingGameRepo interface {
  Create(ctx context.Context, tx *gorm.DB, games []*types.MatchingGame) ([]*types.MatchingGame, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.MatchingGame, error)
  ListLessonGamesByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.MatchingGame, error)
  ListUnitGamesByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.MatchingGame, error)
}

type matchingGameRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMatchingGameRepo(db *gorm.DB, baseLog *logger.Logger) MatchingGameRepo {
  return &matchingGameRepo{db: db, log: baseLog.With("repo", "MatchingGameRepo")}
}

func (r *matchingGameRepo) Create(ctx context.Context, tx *gorm.DB, games []*types.MatchingGame) ([]*types.MatchingGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(games) == 0 {
    return []*types.MatchingGame{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&games).Error; err != nil {
    return nil, err
  }
  return games, nil
}

func (r *matchingGameRepo) GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.MatchingGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MatchingGame
  if len(gameIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Pairs").
    Where("id IN ?", gameIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// Scope filters use the game_type tag, mirroring quizzes.
func (r *matchingGameRepo) ListLessonGamesByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.MatchingGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MatchingGame
  if len(lessonIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("game_type = ? AND lesson_id IN ?", types.QuizTypeLesson, lessonIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *matchingGameRepo) ListUnitGamesByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.MatchingGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MatchingGame
  if len(unitIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("game_type = ? AND unit_id IN ?", types.QuizTypeUnit, unitIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
