package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type GroupRepo interface {
  Create(ctx context.Context, tx *gorm.DB, groups []*types.LearningGroup) ([]*types.LearningGroup, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.LearningGroup, error)
  ListByMemberUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningGroup, error)
  CourseIDsByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]uuid.UUID, error)
  ReplaceCourses(ctx context.Context, tx *gorm.DB, group *types.LearningGroup, courses []*types.Course) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) error
}

type groupRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
  return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (r *groupRepo) Create(ctx context.Context, tx *gorm.DB, groups []*types.LearningGroup) ([]*types.LearningGroup, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(groups) == 0 {
    return []*types.LearningGroup{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&groups).Error; err != nil {
    return nil, err
  }
  return groups, nil
}

func (r *groupRepo) GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.LearningGroup, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LearningGroup
  if len(groupIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Courses").
    Where("id IN ?", groupIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *groupRepo) ListByMemberUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningGroup, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LearningGroup
  err := transaction.WithContext(ctx).
    Joins("JOIN group_membership ON group_membership.group_id = learning_group.id").
    Where("group_membership.user_id = ?", userID).
    Order("learning_group.created_at DESC").
    Find(&results).Error
  if err != nil {
    return nil, err
  }
  return results, nil
}

func (r *groupRepo) CourseIDsByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Table("learning_group_course").
    Where("learning_group_id = ?", groupID).
    Pluck("course_id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *groupRepo) ReplaceCourses(ctx context.Context, tx *gorm.DB, group *types.LearningGroup, courses []*types.Course) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Model(group).
    Association("Courses").
    Replace(courses)
}

func (r *groupRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(groupIDs) == 0 {
    return nil
  }

  // Join rows first: the m2m table carries no gorm cascade.
  if err := transaction.WithContext(ctx).
    Exec("DELETE FROM learning_group_course WHERE learning_group_id IN ?", groupIDs).Error; err != nil {
    return err
  }
  if err := transaction.WithContext(ctx).
    Where("group_id IN ?", groupIDs).
    Delete(&types.GroupMembership{}).Error; err != nil {
    return err
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", groupIDs).
    Delete(&types.LearningGroup{}).Error; err != nil {
    return err
  }
  return nil
}
