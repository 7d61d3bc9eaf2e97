package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type UnitRepo interface {
  Create(ctx context.Context, tx *gorm.DB, units []*types.Unit) ([]*types.Unit, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Unit, error)
  ListByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Unit, error)
}

type unitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
  return &unitRepo{db: db, log: baseLog.With("repo", "UnitRepo")}
}

func (r *unitRepo) Create(ctx context.Context, tx *gorm.DB, units []*types.Unit) ([]*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(units) == 0 {
    return []*types.Unit{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&units).Error; err != nil {
    return nil, err
  }
  return units, nil
}

func (r *unitRepo) GetByIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Unit
  if len(unitIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", unitIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListByCourseIDs returns units ordered by their sort key, ties broken by id
// so the ordering is stable across calls.
func (r *unitRepo) ListByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Unit
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id IN ?", courseIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
