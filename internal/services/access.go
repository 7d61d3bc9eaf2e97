package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

// UnitContent is a unit with everything a learner consumes inside it.
type UnitContent struct {
  Unit    *types.Unit           `json:"unit"`
  Lessons []*LessonOutline      `json:"lessons"`
  Quizzes []*types.Quiz         `json:"quizzes"`
  Games   []*types.MatchingGame `json:"games"`
}

type AccessService interface {
  GetUnitContent(ctx context.Context, userID, unitID uuid.UUID) (*UnitContent, error)
  EnrollInCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserEnrollment, error)
  EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
}

type accessService struct {
  db               *gorm.DB
  log              *logger.Logger
  courseRepo       repos.CourseRepo
  unitRepo         repos.UnitRepo
  lessonRepo       repos.LessonRepo
  quizRepo         repos.QuizRepo
  matchingGameRepo repos.MatchingGameRepo
  enrollmentRepo   repos.EnrollmentRepo
}

func NewAccessService(
  db *gorm.DB,
  baseLog *logger.Logger,
  courseRepo repos.CourseRepo,
  unitRepo repos.UnitRepo,
  lessonRepo repos.LessonRepo,
  quizRepo repos.QuizRepo,
  matchingGameRepo repos.MatchingGameRepo,
  enrollmentRepo repos.EnrollmentRepo,
) AccessService {
  return &accessService{
    db:               db,
    log:              baseLog.With("service", "AccessService"),
    courseRepo:       courseRepo,
    unitRepo:         unitRepo,
    lessonRepo:       lessonRepo,
    quizRepo:         quizRepo,
    matchingGameRepo: matchingGameRepo,
    enrollmentRepo:   enrollmentRepo,
  }
}

// GetUnitContent enforces the premium gate: units of a premium course are only
// served to enrolled users. Free courses are open to any authenticated user.
func (s *accessService) GetUnitContent(ctx context.Context, userID, unitID uuid.UUID) (*UnitContent, error) {
  units, err := s.unitRepo.GetByIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("retrieve unit: %w", err)
  }
  if len(units) == 0 {
    return nil, fmt.Errorf("%w: unit %s", ErrNotFound, unitID)
  }
  unit := units[0]

  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{unit.CourseID})
  if err != nil {
    return nil, fmt.Errorf("retrieve course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("%w: course %s", ErrNotFound, unit.CourseID)
  }
  course := courses[0]

  if course.IsPremium {
    enrolled, err := s.enrollmentRepo.Exists(ctx, nil, userID, course.ID)
    if err != nil {
      return nil, fmt.Errorf("check enrollment: %w", err)
    }
    if !enrolled {
      return nil, fmt.Errorf("%w: not enrolled in this premium course", ErrForbidden)
    }
  }

  lessons, err := s.lessonRepo.ListByUnitIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("list lessons: %w", err)
  }
  lessonIDs := make([]uuid.UUID, 0, len(lessons))
  for _, l := range lessons {
    lessonIDs = append(lessonIDs, l.ID)
  }

  lessonQuizzes, err := s.quizRepo.ListLessonQuizzesByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, fmt.Errorf("list lesson quizzes: %w", err)
  }
  unitQuizzes, err := s.quizRepo.ListUnitQuizzesByUnitIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("list unit quizzes: %w", err)
  }
  lessonGames, err := s.matchingGameRepo.ListLessonGamesByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, fmt.Errorf("list lesson games: %w", err)
  }
  unitGames, err := s.matchingGameRepo.ListUnitGamesByUnitIDs(ctx, nil, []uuid.UUID{unitID})
  if err != nil {
    return nil, fmt.Errorf("list unit games: %w", err)
  }

  quizzesByLesson := make(map[uuid.UUID][]*types.Quiz)
  for _, q := range lessonQuizzes {
    if q.LessonID != nil {
      quizzesByLesson[*q.LessonID] = append(quizzesByLesson[*q.LessonID], q)
    }
  }
  gamesByLesson := make(map[uuid.UUID][]*types.MatchingGame)
  for _, g := range lessonGames {
    if g.LessonID != nil {
      gamesByLesson[*g.LessonID] = append(gamesByLesson[*g.LessonID], g)
    }
  }

  content := &UnitContent{
    Unit:    unit,
    Lessons: make([]*LessonOutline, 0, len(lessons)),
    Quizzes: unitQuizzes,
    Games:   unitGames,
  }
  for _, l := range lessons {
    content.Lessons = append(content.Lessons, &LessonOutline{
      Lesson:  l,
      Quizzes: quizzesByLesson[l.ID],
      Games:   gamesByLesson[l.ID],
    })
  }
  return content, nil
}

// EnrollInCourse is the self-serve path and covers free courses only; premium
// enrollments are granted out of band, so the endpoint refuses them. Repeated
// enrollment in the same course is a no-op success.
func (s *accessService) EnrollInCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserEnrollment, error) {
  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("retrieve course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("%w: course %s", ErrNotFound, courseID)
  }
  course := courses[0]

  if course.IsPremium {
    return nil, fmt.Errorf("%w: premium courses require purchase", ErrForbidden)
  }

  enrollment := &types.UserEnrollment{
    ID:         uuid.New(),
    UserID:     userID,
    CourseID:   courseID,
    EnrolledAt: time.Now(),
  }
  if _, err := s.enrollmentRepo.Create(ctx, nil, []*types.UserEnrollment{enrollment}); err != nil {
    // The unique index makes concurrent double-enrolls race-safe; a
    // duplicate is the idempotent success path.
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      s.log.Debug("enrollment already exists", "user_id", userID, "course_id", courseID)
      return nil, nil
    }
    return nil, fmt.Errorf("create enrollment: %w", err)
  }
  return enrollment, nil
}

func (s *accessService) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
  courseIDs, err := s.enrollmentRepo.CourseIDsByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("list enrolled course ids: %w", err)
  }
  if len(courseIDs) == 0 {
    return []*types.Course{}, nil
  }
  courses, err := s.courseRepo.GetByIDs(ctx, nil, courseIDs)
  if err != nil {
    return nil, fmt.Errorf("retrieve enrolled courses: %w", err)
  }
  return courses, nil
}
