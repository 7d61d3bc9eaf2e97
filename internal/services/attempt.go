package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/clients/redis"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

// QuestionResult is the per-question breakdown returned after grading.
type QuestionResult struct {
  QuestionID    uuid.UUID `json:"question_id"`
  Correct       bool      `json:"correct"`
  PointsAwarded int       `json:"points_awarded"`
  Explanation   *string   `json:"explanation,omitempty"`
}

// AttemptResult is the outcome of a graded submission.
type AttemptResult struct {
  Attempt   *types.UserQuizAttempt `json:"attempt"`
  Breakdown []*QuestionResult      `json:"breakdown"`
}

type AttemptService interface {
  SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers map[uuid.UUID]uuid.UUID) (*AttemptResult, error)
  GetMyAttempt(ctx context.Context, userID, quizID uuid.UUID) (*types.UserQuizAttempt, error)
  CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*types.UserLessonProgress, error)
}

type attemptService struct {
  db           *gorm.DB
  log          *logger.Logger
  quizRepo     repos.QuizRepo
  lessonRepo   repos.LessonRepo
  attemptRepo  repos.QuizAttemptRepo
  progressRepo repos.LessonProgressRepo
  groupRepo    repos.GroupRepo
  cache        redis.LeaderboardCache
}

// NewAttemptService takes an optional leaderboard cache; pass nil to run
// without one.
func NewAttemptService(
  db *gorm.DB,
  baseLog *logger.Logger,
  quizRepo repos.QuizRepo,
  lessonRepo repos.LessonRepo,
  attemptRepo repos.QuizAttemptRepo,
  progressRepo repos.LessonProgressRepo,
  groupRepo repos.GroupRepo,
  cache redis.LeaderboardCache,
) AttemptService {
  return &attemptService{
    db:           db,
    log:          baseLog.With("service", "AttemptService"),
    quizRepo:     quizRepo,
    lessonRepo:   lessonRepo,
    attemptRepo:  attemptRepo,
    progressRepo: progressRepo,
    groupRepo:    groupRepo,
    cache:        cache,
  }
}

// SubmitAttempt grades the submission server side and replaces any earlier
// attempt for the same quiz. Replacement is delete-then-insert inside one
// transaction, so readers only ever see the latest attempt.
func (s *attemptService) SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers map[uuid.UUID]uuid.UUID) (*AttemptResult, error) {
  quizzes, err := s.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
  if err != nil {
    return nil, fmt.Errorf("retrieve quiz: %w", err)
  }
  if len(quizzes) == 0 {
    return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
  }
  quiz := quizzes[0]

  score := 0
  totalPoints := 0
  breakdown := make([]*QuestionResult, 0, len(quiz.Questions))
  for _, question := range quiz.Questions {
    totalPoints += question.Points
    result := &QuestionResult{
      QuestionID:  question.ID,
      Explanation: question.Explanation,
    }
    chosenID, answered := answers[question.ID]
    if answered {
      for _, choice := range question.Choices {
        if choice.ID == chosenID && choice.IsCorrect {
          result.Correct = true
          result.PointsAwarded = question.Points
          score += question.Points
          break
        }
      }
    }
    breakdown = append(breakdown, result)
  }

  rawAnswers, err := json.Marshal(answers)
  if err != nil {
    return nil, fmt.Errorf("encode answers: %w", err)
  }

  attempt := &types.UserQuizAttempt{
    ID:          uuid.New(),
    UserID:      userID,
    QuizID:      quizID,
    Score:       score,
    TotalPoints: totalPoints,
    Answers:     rawAnswers,
    AttemptedAt: time.Now(),
  }

  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := s.attemptRepo.FullDeleteByUserAndQuizID(ctx, tx, userID, quizID); dErr != nil {
      return fmt.Errorf("delete previous attempt: %w", dErr)
    }
    if _, cErr := s.attemptRepo.Create(ctx, tx, []*types.UserQuizAttempt{attempt}); cErr != nil {
      return fmt.Errorf("create attempt: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  s.invalidateGroupStandings(ctx, userID)

  return &AttemptResult{Attempt: attempt, Breakdown: breakdown}, nil
}

func (s *attemptService) GetMyAttempt(ctx context.Context, userID, quizID uuid.UUID) (*types.UserQuizAttempt, error) {
  attempts, err := s.attemptRepo.GetByUserAndQuizIDs(ctx, nil, userID, []uuid.UUID{quizID})
  if err != nil {
    return nil, fmt.Errorf("retrieve attempt: %w", err)
  }
  if len(attempts) == 0 {
    return nil, fmt.Errorf("%w: no attempt for quiz %s", ErrNotFound, quizID)
  }
  return attempts[0], nil
}

// CompleteLesson marks a lesson done. Marking the same lesson twice keeps the
// original completion record.
func (s *attemptService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*types.UserLessonProgress, error) {
  lessons, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, fmt.Errorf("retrieve lesson: %w", err)
  }
  if len(lessons) == 0 {
    return nil, fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
  }

  existing, err := s.progressRepo.Get(ctx, nil, userID, lessonID)
  if err != nil {
    return nil, fmt.Errorf("retrieve lesson progress: %w", err)
  }
  if existing != nil {
    return existing, nil
  }

  record := &types.UserLessonProgress{
    ID:          uuid.New(),
    UserID:      userID,
    LessonID:    lessonID,
    CompletedAt: time.Now(),
  }
  if _, err := s.progressRepo.Create(ctx, nil, []*types.UserLessonProgress{record}); err != nil {
    // Lost the race against a concurrent completion; the winner's record
    // stands.
    if existing, gErr := s.progressRepo.Get(ctx, nil, userID, lessonID); gErr == nil && existing != nil {
      return existing, nil
    }
    return nil, fmt.Errorf("create lesson progress: %w", err)
  }
  return record, nil
}

// invalidateGroupStandings drops cached standings for every group the user is
// in. Cache trouble is logged, never surfaced: a stale leaderboard expires on
// its own.
func (s *attemptService) invalidateGroupStandings(ctx context.Context, userID uuid.UUID) {
  if s.cache == nil {
    return
  }
  groups, err := s.groupRepo.ListByMemberUserID(ctx, nil, userID)
  if err != nil {
    s.log.Warn("list groups for cache invalidation failed", "error", err)
    return
  }
  if len(groups) == 0 {
    return
  }
  groupIDs := make([]uuid.UUID, 0, len(groups))
  for _, g := range groups {
    groupIDs = append(groupIDs, g.ID)
  }
  if err := s.cache.Invalidate(ctx, groupIDs); err != nil {
    s.log.Warn("leaderboard cache invalidation failed", "error", err)
  }
}
