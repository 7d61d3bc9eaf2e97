package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type EnrollmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, enrollments []*types.UserEnrollment) ([]*types.UserEnrollment, error)
  Exists(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (bool, error)
  CourseIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type enrollmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
  return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.UserEnrollment) ([]*types.UserEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(enrollments) == 0 {
    return []*types.UserEnrollment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
    return nil, err
  }
  return enrollments, nil
}

func (r *enrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  err := transaction.WithContext(ctx).
    Model(&types.UserEnrollment{}).
    Where("user_id = ? AND course_id = ?", userID, courseID).
    Count(&count).Error
  if err != nil {
    return false, err
  }
  return count > 0, nil
}

func (r *enrollmentRepo) CourseIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.UserEnrollment{}).
    Where("user_id = ?", userID).
    Pluck("course_id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}
