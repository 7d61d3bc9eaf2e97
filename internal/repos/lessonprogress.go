package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type LessonProgressRepo interface {
  Create(ctx context.Context, tx *gorm.DB, records []*types.UserLessonProgress) ([]*types.UserLessonProgress, error)
  Get(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.UserLessonProgress, error)
  ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserLessonProgress, error)
}

type lessonProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
  return &lessonProgressRepo{db: db, log: baseLog.With("repo", "LessonProgressRepo")}
}

func (r *lessonProgressRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.UserLessonProgress) ([]*types.UserLessonProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(records) == 0 {
    return []*types.UserLessonProgress{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    return nil, err
  }
  return records, nil
}

func (r *lessonProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.UserLessonProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.UserLessonProgress
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND lesson_id = ?", userID, lessonID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (r *lessonProgressRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserLessonProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserLessonProgress
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
