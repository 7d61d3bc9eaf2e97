package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

const dashboardFeedLimit = 10

// DashboardData is the home screen payload: the user's running point total,
// the courses they have touched, and the active announcement feeds.
type DashboardData struct {
  TotalPoints int                `json:"total_points"`
  MyCourses   []*types.Course    `json:"my_courses"`
  Notices     []*types.Notice    `json:"notices"`
  Promotions  []*types.Promotion `json:"promotions"`
}

// ProfileData is the account view.
type ProfileData struct {
  User             *types.User `json:"user"`
  TotalPoints      int         `json:"total_points"`
  CompletedLessons int         `json:"completed_lessons"`
}

type DashboardService interface {
  Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardData, error)
  Profile(ctx context.Context, userID uuid.UUID) (*ProfileData, error)
}

type dashboardService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  courseRepo   repos.CourseRepo
  attemptRepo  repos.QuizAttemptRepo
  progressRepo repos.LessonProgressRepo
  noticeRepo   repos.NoticeRepo
}

func NewDashboardService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  courseRepo repos.CourseRepo,
  attemptRepo repos.QuizAttemptRepo,
  progressRepo repos.LessonProgressRepo,
  noticeRepo repos.NoticeRepo,
) DashboardService {
  return &dashboardService{
    db:           db,
    log:          baseLog.With("service", "DashboardService"),
    userRepo:     userRepo,
    courseRepo:   courseRepo,
    attemptRepo:  attemptRepo,
    progressRepo: progressRepo,
    noticeRepo:   noticeRepo,
  }
}

func (s *dashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardData, error) {
  totalPoints, err := s.attemptRepo.SumScoreByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("sum total points: %w", err)
  }

  courseIDs, err := touchedCourseIDs(ctx, s.courseRepo, userID)
  if err != nil {
    return nil, err
  }
  myCourses := []*types.Course{}
  if len(courseIDs) > 0 {
    myCourses, err = s.courseRepo.GetByIDs(ctx, nil, courseIDs)
    if err != nil {
      return nil, fmt.Errorf("retrieve my courses: %w", err)
    }
  }

  notices, err := s.noticeRepo.ListActiveNotices(ctx, nil, dashboardFeedLimit)
  if err != nil {
    return nil, fmt.Errorf("list notices: %w", err)
  }
  promotions, err := s.noticeRepo.ListActivePromotions(ctx, nil, dashboardFeedLimit)
  if err != nil {
    return nil, fmt.Errorf("list promotions: %w", err)
  }

  return &DashboardData{
    TotalPoints: totalPoints,
    MyCourses:   myCourses,
    Notices:     notices,
    Promotions:  promotions,
  }, nil
}

func (s *dashboardService) Profile(ctx context.Context, userID uuid.UUID) (*ProfileData, error) {
  users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("retrieve user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
  }

  totalPoints, err := s.attemptRepo.SumScoreByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("sum total points: %w", err)
  }

  progress, err := s.progressRepo.ListByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("list lesson progress: %w", err)
  }

  return &ProfileData{
    User:             users[0],
    TotalPoints:      totalPoints,
    CompletedLessons: len(progress),
  }, nil
}
