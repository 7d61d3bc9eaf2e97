package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type NoticeRepo interface {
  CreateNotices(ctx context.Context, tx *gorm.DB, notices []*types.Notice) ([]*types.Notice, error)
  CreatePromotions(ctx context.Context, tx *gorm.DB, promotions []*types.Promotion) ([]*types.Promotion, error)
  ListActiveNotices(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Notice, error)
  ListActivePromotions(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Promotion, error)
}

type noticeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNoticeRepo(db *gorm.DB, baseLog *logger.Logger) NoticeRepo {
  return &noticeRepo{db: db, log: baseLog.With("repo", "NoticeRepo")}
}

func (r *noticeRepo) CreateNotices(ctx context.Context, tx *gorm.DB, notices []*types.Notice) ([]*types.Notice, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(notices) == 0 {
    return []*types.Notice{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notices).Error; err != nil {
    return nil, err
  }
  return notices, nil
}

func (r *noticeRepo) CreatePromotions(ctx context.Context, tx *gorm.DB, promotions []*types.Promotion) ([]*types.Promotion, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(promotions) == 0 {
    return []*types.Promotion{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&promotions).Error; err != nil {
    return nil, err
  }
  return promotions, nil
}

func (r *noticeRepo) ListActiveNotices(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Notice, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).
    Where("is_active = ?", true).
    Order("created_at DESC")
  if limit > 0 {
    query = query.Limit(limit)
  }

  var results []*types.Notice
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *noticeRepo) ListActivePromotions(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Promotion, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).
    Where("is_active = ?", true).
    Order("created_at DESC")
  if limit > 0 {
    query = query.Limit(limit)
  }

  var results []*types.Promotion
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
