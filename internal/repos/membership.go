package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type MembershipRepo interface {
  Create(ctx context.Context, tx *gorm.DB, memberships []*types.GroupMembership) ([]*types.GroupMembership, error)
  Get(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) (*types.GroupMembership, error)
  ListByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.GroupMembership, error)
  CountByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error)
  CountAdminsByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error)
  SetGroupAdmin(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID, isAdmin bool) error
  FullDelete(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) error
}

type membershipRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMembershipRepo(db *gorm.DB, baseLog *logger.Logger) MembershipRepo {
  return &membershipRepo{db: db, log: baseLog.With("repo", "MembershipRepo")}
}

func (r *membershipRepo) Create(ctx context.Context, tx *gorm.DB, memberships []*types.GroupMembership) ([]*types.GroupMembership, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(memberships) == 0 {
    return []*types.GroupMembership{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&memberships).Error; err != nil {
    return nil, err
  }
  return memberships, nil
}

func (r *membershipRepo) Get(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) (*types.GroupMembership, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.GroupMembership
  err := transaction.WithContext(ctx).
    Where("group_id = ? AND user_id = ?", groupID, userID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (r *membershipRepo) ListByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.GroupMembership, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.GroupMembership
  err := transaction.WithContext(ctx).
    Preload("User").
    Where("group_id = ?", groupID).
    Order("joined_at ASC, id ASC").
    Find(&results).Error
  if err != nil {
    return nil, err
  }
  return results, nil
}

func (r *membershipRepo) CountByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  err := transaction.WithContext(ctx).
    Model(&types.GroupMembership{}).
    Where("group_id = ?", groupID).
    Count(&count).Error
  return count, err
}

func (r *membershipRepo) CountAdminsByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  err := transaction.WithContext(ctx).
    Model(&types.GroupMembership{}).
    Where("group_id = ? AND is_group_admin = ?", groupID, true).
    Count(&count).Error
  return count, err
}

func (r *membershipRepo) SetGroupAdmin(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID, isAdmin bool) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Model(&types.GroupMembership{}).
    Where("group_id = ? AND user_id = ?", groupID, userID).
    Update("is_group_admin", isAdmin).Error
}

func (r *membershipRepo) FullDelete(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("group_id = ? AND user_id = ?", groupID, userID).
    Delete(&types.GroupMembership{}).Error
}
