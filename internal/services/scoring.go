package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/repos"
)

// PointsSummary pairs the maximum achievable points of a scope with what the
// user has actually earned there.
type PointsSummary struct {
  TotalPossible int `json:"total_possible"`
  Earned        int `json:"earned"`
}

type ScoringService interface {
  UnitPoints(ctx context.Context, userID, unitID uuid.UUID) (*PointsSummary, error)
  CoursePoints(ctx context.Context, userID, courseID uuid.UUID) (*PointsSummary, error)
  IsCourseCompleted(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
  TotalPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

type scoringService struct {
  db           *gorm.DB
  log          *logger.Logger
  unitRepo     repos.UnitRepo
  courseRepo   repos.CourseRepo
  quizRepo     repos.QuizRepo
  questionRepo repos.QuestionRepo
  attemptRepo  repos.QuizAttemptRepo
}

func NewScoringService(
  db *gorm.DB,
  baseLog *logger.Logger,
  unitRepo repos.UnitRepo,
  courseRepo repos.CourseRepo,
  quizRepo repos.QuizRepo,
  questionRepo repos.QuestionRepo,
  attemptRepo repos.QuizAttemptRepo,
) ScoringService {
  return &scoringService{
    db:           db,
    log:          baseLog.With("service", "ScoringService"),
    unitRepo:     unitRepo,
    courseRepo:   courseRepo,
    quizRepo:     quizRepo,
    questionRepo: questionRepo,
    attemptRepo:  attemptRepo,
  }
}

func (s *scoringService) UnitPoints(ctx context.Context, userID, unitID uuid.UUID) (*PointsSummary, error) {
  units, err := s.unitRepo.GetByIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("retrieve unit: %w", err)
  }
  if len(units) == 0 {
    return nil, fmt.Errorf("%w: unit %s", ErrNotFound, unitID)
  }

  quizIDs, err := s.quizRepo.InScopeIDsByUnitIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("resolve unit quiz scope: %w", err)
  }
  return s.summarize(ctx, userID, quizIDs)
}

func (s *scoringService) CoursePoints(ctx context.Context, userID, courseID uuid.UUID) (*PointsSummary, error) {
  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("retrieve course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("%w: course %s", ErrNotFound, courseID)
  }

  quizIDs, err := s.quizRepo.InScopeIDsByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("resolve course quiz scope: %w", err)
  }
  return s.summarize(ctx, userID, quizIDs)
}

// IsCourseCompleted holds only when the user has earned every available point.
// A course with no points on offer is never completed.
func (s *scoringService) IsCourseCompleted(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
  summary, err := s.CoursePoints(ctx, userID, courseID)
  if err != nil {
    return false, err
  }
  return summary.TotalPossible > 0 && summary.Earned >= summary.TotalPossible, nil
}

func (s *scoringService) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
  total, err := s.attemptRepo.SumScoreByUserID(ctx, nil, userID)
  if err != nil {
    return 0, fmt.Errorf("sum total points: %w", err)
  }
  return total, nil
}

func (s *scoringService) summarize(ctx context.Context, userID uuid.UUID, quizIDs []uuid.UUID) (*PointsSummary, error) {
  if len(quizIDs) == 0 {
    return &PointsSummary{}, nil
  }

  totalPossible, err := s.questionRepo.SumPointsByQuizIDs(ctx, nil, quizIDs)
  if err != nil {
    return nil, fmt.Errorf("sum possible points: %w", err)
  }
  earned, err := s.attemptRepo.SumScoreByUserAndQuizIDs(ctx, nil, userID, quizIDs)
  if err != nil {
    return nil, fmt.Errorf("sum earned points: %w", err)
  }
  return &PointsSummary{TotalPossible: totalPossible, Earned: earned}, nil
}
