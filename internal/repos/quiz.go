package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type QuizRepo interface {
  Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.Quiz, error)
  ListLessonQuizzesByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Quiz, error)
  ListUnitQuizzesByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Quiz, error)
  InScopeIDsByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]uuid.UUID, error)
  InScopeIDsByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]uuid.UUID, error)
}

type quizRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
  return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(quizzes) == 0 {
    return []*types.Quiz{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
    return nil, err
  }
  return quizzes, nil
}

func (r *quizRepo) GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Quiz
  if len(quizIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Questions", func(db *gorm.DB) *gorm.DB {
      return db.Order("created_at ASC, id ASC")
    }).
    Preload("Questions.Choices").
    Where("id IN ?", quizIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListLessonQuizzesByLessonIDs filters on the quiz_type tag, not on which
// foreign key happens to be populated. The tag is authoritative.
func (r *quizRepo) ListLessonQuizzesByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Quiz
  if len(lessonIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("quiz_type = ? AND lesson_id IN ?", types.QuizTypeLesson, lessonIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *quizRepo) ListUnitQuizzesByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Quiz
  if len(unitIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("quiz_type = ? AND unit_id IN ?", types.QuizTypeUnit, unitIDs).
    Order("sort_order ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// InScopeIDsByUnitIDs resolves every quiz that counts toward the given units:
// lesson quizzes of the units' lessons plus unit mastery quizzes of the units
// themselves.
func (r *quizRepo) InScopeIDsByUnitIDs(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(unitIDs) == 0 {
    return nil, nil
  }

  var lessonQuizIDs []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Quiz{}).
    Joins("JOIN lesson ON lesson.id = quiz.lesson_id").
    Where("quiz.quiz_type = ? AND lesson.unit_id IN ?", types.QuizTypeLesson, unitIDs).
    Pluck("quiz.id", &lessonQuizIDs).Error
  if err != nil {
    return nil, err
  }

  var unitQuizIDs []uuid.UUID
  err = transaction.WithContext(ctx).
    Model(&types.Quiz{}).
    Where("quiz_type = ? AND unit_id IN ?", types.QuizTypeUnit, unitIDs).
    Pluck("quiz.id", &unitQuizIDs).Error
  if err != nil {
    return nil, err
  }

  return mergeIDs(lessonQuizIDs, unitQuizIDs), nil
}

// InScopeIDsByCourseIDs is the course-wide variant, resolved with two joins
// rather than iterating units.
func (r *quizRepo) InScopeIDsByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(courseIDs) == 0 {
    return nil, nil
  }

  var lessonQuizIDs []uuid.UUID
  err := transaction.WithContext(ctx).
    Model(&types.Quiz{}).
    Joins("JOIN lesson ON lesson.id = quiz.lesson_id").
    Joins("JOIN unit ON unit.id = lesson.unit_id").
    Where("quiz.quiz_type = ? AND unit.course_id IN ?", types.QuizTypeLesson, courseIDs).
    Pluck("quiz.id", &lessonQuizIDs).Error
  if err != nil {
    return nil, err
  }

  var unitQuizIDs []uuid.UUID
  err = transaction.WithContext(ctx).
    Model(&types.Quiz{}).
    Joins("JOIN unit ON unit.id = quiz.unit_id").
    Where("quiz.quiz_type = ? AND unit.course_id IN ?", types.QuizTypeUnit, courseIDs).
    Pluck("quiz.id", &unitQuizIDs).Error
  if err != nil {
    return nil, err
  }

  return mergeIDs(lessonQuizIDs, unitQuizIDs), nil
}

func mergeIDs(a, b []uuid.UUID) []uuid.UUID {
  seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
  out := make([]uuid.UUID, 0, len(a)+len(b))
  for _, id := range a {
    if _, ok := seen[id]; !ok {
      seen[id] = struct{}{}
      out = append(out, id)
    }
  }
  for _, id := range b {
    if _, ok := seen[id]; !ok {
      seen[id] = struct{}{}
      out = append(out, id)
    }
  }
  return out
}
