package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type LessonRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Lesson, error)
  ListByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Lesson, error)
}

type lessonRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
  return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(lessons) == 0 {
    return []*types.Lesson{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&lessons).Error; err != nil {
    return nil, err
  }
  return lessons, nil
}

func (r *lessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Lesson
  if len(lessonIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", lessonIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *lessonRepo) ListByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Lesson
  if len(unitIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("unit_id IN ?", unitIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
