package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

type QuestionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
  ListByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.Question, error)
  SumPointsByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) (int, error)
}

type questionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
  return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(questions) == 0 {
    return []*types.Question{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
    return nil, err
  }
  return questions, nil
}

func (r *questionRepo) ListByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Question
  if len(quizIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Choices").
    Where("quiz_id IN ?", quizIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// SumPointsByQuizIDs aggregates total possible points across the given quizzes
// in one statement.
func (r *questionRepo) SumPointsByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(quizIDs) == 0 {
    return 0, nil
  }

  var total int64
  err := transaction.WithContext(ctx).
    Model(&types.Question{}).
    Where("quiz_id IN ?", quizIDs).
    Select("COALESCE(SUM(points), 0)").
    Scan(&total).Error
  if err != nil {
    return 0, err
  }
  return int(total), nil
}
