package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type CategoryRepo interface {
  Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error)
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
}

type categoryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
  return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(categories) == 0 {
    return []*types.Category{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
    return nil, err
  }
  return categories, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Category
  if len(categoryIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", categoryIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *categoryRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Category
  if err := transaction.WithContext(ctx).
    Preload("Courses").
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
