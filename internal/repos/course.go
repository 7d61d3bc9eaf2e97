package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type CourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
  List(ctx context.Context, tx *gorm.DB, categoryID *uuid.UUID, search string) ([]*types.Course, error)
  // "My courses" legs: course ids a user is enrolled in or has touched, one
  // query each.
  IDsWithEnrollmentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
  IDsWithLessonProgressByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
  IDsWithLessonQuizAttemptsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
  IDsWithUnitQuizAttemptsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
  return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(courses) == 0 {
    return []*types.Course{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, err
  }
  return courses, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Course
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", courseIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *courseRepo) List(ctx context.Context, tx *gorm.DB, categoryID *uuid.UUID, search string) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.Course{})
  if categoryID != nil {
    query = query.Where("category_id = ?", *categoryID)
  }
  if search != "" {
    pattern := "%" + search + "%"
    query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
  }

  var results []*types.Course
  if err := query.Order("title ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *courseRepo) IDsWithEnrollmentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Course{}).
    Distinct("course.id").
    Joins("JOIN user_enrollment ON user_enrollment.course_id = course.id").
    Where("user_enrollment.user_id = ?", userID).
    Pluck("course.id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *courseRepo) IDsWithLessonProgressByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Course{}).
    Distinct("course.id").
    Joins("JOIN unit ON unit.course_id = course.id").
    Joins("JOIN lesson ON lesson.unit_id = unit.id").
    Joins("JOIN user_lesson_progress ON user_lesson_progress.lesson_id = lesson.id").
    Where("user_lesson_progress.user_id = ?", userID).
    Pluck("course.id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *courseRepo) IDsWithLessonQuizAttemptsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Course{}).
    Distinct("course.id").
    Joins("JOIN unit ON unit.course_id = course.id").
    Joins("JOIN lesson ON lesson.unit_id = unit.id").
    Joins("JOIN quiz ON quiz.lesson_id = lesson.id AND quiz.quiz_type = ?", types.QuizTypeLesson).
    Joins("JOIN user_quiz_attempt ON user_quiz_attempt.quiz_id = quiz.id").
    Where("user_quiz_attempt.user_id = ?", userID).
    Pluck("course.id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *courseRepo) IDsWithUnitQuizAttemptsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Course{}).
    Distinct("course.id").
    Joins("JOIN unit ON unit.course_id = course.id").
    Joins("JOIN quiz ON quiz.unit_id = unit.id AND quiz.quiz_type = ?", types.QuizTypeUnit).
    Joins("JOIN user_quiz_attempt ON user_quiz_attempt.quiz_id = quiz.id").
    Where("user_quiz_attempt.user_id = ?", userID).
    Pluck("course.id", &ids).Error
  if err != nil {
    return nil, err
  }
  return ids, nil
}
