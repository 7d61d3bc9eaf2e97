package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/types"
)

// MemberScore is one row of the leaderboard aggregation: a user and the sum of
// their attempt scores over some quiz set.
type MemberScore struct {
  UserID     uuid.UUID `gorm:"column:user_id"`
  TotalScore int       `gorm:"column:total_score"`
}

type QuizAttemptRepo interface {
  Create(ctx context.Context, tx *gorm.DB, attempts []*types.UserQuizAttempt) ([]*types.UserQuizAttempt, error)
  GetByUserAndQuizIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, quizIDs []uuid.UUID) ([]*types.UserQuizAttempt, error)
  FullDeleteByUserAndQuizID(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) error
  SumScoreByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
  SumScoreByUserAndQuizIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, quizIDs []uuid.UUID) (int, error)
  SumScoresByUserIDs(ctx context.Context, tx *gorm.DB, userIDs, quizIDs []uuid.UUID) ([]MemberScore, error)
}

type quizAttemptRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
  return &quizAttemptRepo{db: db, log: baseLog.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempts []*types.UserQuizAttempt) ([]*types.UserQuizAttempt, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(attempts) == 0 {
    return []*types.UserQuizAttempt{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&attempts).Error; err != nil {
    return nil, err
  }
  return attempts, nil
}

func (r *quizAttemptRepo) GetByUserAndQuizIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, quizIDs []uuid.UUID) ([]*types.UserQuizAttempt, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserQuizAttempt
  if len(quizIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND quiz_id IN ?", userID, quizIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *quizAttemptRepo) FullDeleteByUserAndQuizID(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND quiz_id = ?", userID, quizID).
    Delete(&types.UserQuizAttempt{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *quizAttemptRepo) SumScoreByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var total int64
  err := transaction.WithContext(ctx).
    Model(&types.UserQuizAttempt{}).
    Where("user_id = ?", userID).
    Select("COALESCE(SUM(score), 0)").
    Scan(&total).Error
  if err != nil {
    return 0, err
  }
  return int(total), nil
}

func (r *quizAttemptRepo) SumScoreByUserAndQuizIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, quizIDs []uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(quizIDs) == 0 {
    return 0, nil
  }

  var total int64
  err := transaction.WithContext(ctx).
    Model(&types.UserQuizAttempt{}).
    Where("user_id = ? AND quiz_id IN ?", userID, quizIDs).
    Select("COALESCE(SUM(score), 0)").
    Scan(&total).Error
  if err != nil {
    return 0, err
  }
  return int(total), nil
}

// SumScoresByUserIDs computes every member's total over the quiz set in one
// grouped query. Members with no qualifying attempts are absent from the
// result; the caller fills in their zeros.
func (r *quizAttemptRepo) SumScoresByUserIDs(ctx context.Context, tx *gorm.DB, userIDs, quizIDs []uuid.UUID) ([]MemberScore, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(userIDs) == 0 || len(quizIDs) == 0 {
    return nil, nil
  }

  var rows []MemberScore
  err := transaction.WithContext(ctx).
    Model(&types.UserQuizAttempt{}).
    Select("user_id, COALESCE(SUM(score), 0) AS total_score").
    Where("user_id IN ? AND quiz_id IN ?", userIDs, quizIDs).
    Group("user_id").
    Scan(&rows).Error
  if err != nil {
    return nil, err
  }
  return rows, nil
}
