package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/normalization"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

// CourseOutline is a course with its full ordered content tree. Quizzes and
// games are resolved by their scope tag, lesson-level entries hang off the
// lesson and unit-level entries off the unit.
type CourseOutline struct {
  Course *types.Course  `json:"course"`
  Units  []*UnitOutline `json:"units"`
}

type UnitOutline struct {
  Unit        *types.Unit           `json:"unit"`
  Lessons     []*LessonOutline      `json:"lessons"`
  UnitQuizzes []*types.Quiz         `json:"unit_quizzes"`
  UnitGames   []*types.MatchingGame `json:"unit_games"`
}

type LessonOutline struct {
  Lesson  *types.Lesson         `json:"lesson"`
  Quizzes []*types.Quiz         `json:"quizzes"`
  Games   []*types.MatchingGame `json:"games"`
}

type CatalogService interface {
  ListCategories(ctx context.Context) ([]*types.Category, error)
  ListCourses(ctx context.Context, categoryID *uuid.UUID, search string) ([]*types.Course, error)
  GetCourseOutline(ctx context.Context, courseID uuid.UUID) (*CourseOutline, error)
  GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error)
  GetMatchingGame(ctx context.Context, gameID uuid.UUID) (*types.MatchingGame, error)
  MyCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
}

type catalogService struct {
  db               *gorm.DB
  log              *logger.Logger
  categoryRepo     repos.CategoryRepo
  courseRepo       repos.CourseRepo
  unitRepo         repos.UnitRepo
  lessonRepo       repos.LessonRepo
  quizRepo         repos.QuizRepo
  matchingGameRepo repos.MatchingGameRepo
}

func NewCatalogService(
  db *gorm.DB,
  baseLog *logger.Logger,
  categoryRepo repos.CategoryRepo,
  courseRepo repos.CourseRepo,
  unitRepo repos.UnitRepo,
  lessonRepo repos.LessonRepo,
  quizRepo repos.QuizRepo,
  matchingGameRepo repos.MatchingGameRepo,
) CatalogService {
  return &catalogService{
    db:               db,
    log:              baseLog.With("service", "CatalogService"),
    categoryRepo:     categoryRepo,
    courseRepo:       courseRepo,
    unitRepo:         unitRepo,
    lessonRepo:       lessonRepo,
    quizRepo:         quizRepo,
    matchingGameRepo: matchingGameRepo,
  }
}

func (cs *catalogService) ListCategories(ctx context.Context) ([]*types.Category, error) {
  categories, err := cs.categoryRepo.ListAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("list categories: %w", err)
  }
  return categories, nil
}

func (cs *catalogService) ListCourses(ctx context.Context, categoryID *uuid.UUID, search string) ([]*types.Course, error) {
  search = normalization.TrimInputString(search)
  courses, err := cs.courseRepo.List(ctx, nil, categoryID, search)
  if err != nil {
    return nil, fmt.Errorf("list courses: %w", err)
  }
  return courses, nil
}

// GetCourseOutline assembles the whole tree with one batched query per level
// instead of walking unit by unit.
func (cs *catalogService) GetCourseOutline(ctx context.Context, courseID uuid.UUID) (*CourseOutline, error) {
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("retrieve course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("%w: course %s", ErrNotFound, courseID)
  }
  course := courses[0]

  units, err := cs.unitRepo.ListByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("list units: %w", err)
  }

  unitIDs := make([]uuid.UUID, 0, len(units))
  for _, u := range units {
    unitIDs = append(unitIDs, u.ID)
  }

  lessons, err := cs.lessonRepo.ListByUnitIDs(ctx, nil, unitIDs)
  if err != nil {
    return nil, fmt.Errorf("list lessons: %w", err)
  }
  lessonIDs := make([]uuid.UUID, 0, len(lessons))
  for _, l := range lessons {
    lessonIDs = append(lessonIDs, l.ID)
  }

  lessonQuizzes, err := cs.quizRepo.ListLessonQuizzesByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, fmt.Errorf("list lesson quizzes: %w", err)
  }
  unitQuizzes, err := cs.quizRepo.ListUnitQuizzesByUnitIDs(ctx, nil, unitIDs)
  if err != nil {
    return nil, fmt.Errorf("list unit quizzes: %w", err)
  }
  lessonGames, err := cs.matchingGameRepo.ListLessonGamesByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, fmt.Errorf("list lesson games: %w", err)
  }
  unitGames, err := cs.matchingGameRepo.ListUnitGamesByUnitIDs(ctx, nil, unitIDs)
  if err != nil {
    return nil, fmt.Errorf("list unit games: %w", err)
  }

  quizzesByLesson := make(map[uuid.UUID][]*types.Quiz)
  for _, q := range lessonQuizzes {
    if q.LessonID != nil {
      quizzesByLesson[*q.LessonID] = append(quizzesByLesson[*q.LessonID], q)
    }
  }
  quizzesByUnit := make(map[uuid.UUID][]*types.Quiz)
  for _, q := range unitQuizzes {
    if q.UnitID != nil {
      quizzesByUnit[*q.UnitID] = append(quizzesByUnit[*q.UnitID], q)
    }
  }
  gamesByLesson := make(map[uuid.UUID][]*types.MatchingGame)
  for _, g := range lessonGames {
    if g.LessonID != nil {
      gamesByLesson[*g.LessonID] = append(gamesByLesson[*g.LessonID], g)
    }
  }
  gamesByUnit := make(map[uuid.UUID][]*types.MatchingGame)
  for _, g := range unitGames {
    if g.UnitID != nil {
      gamesByUnit[*g.UnitID] = append(gamesByUnit[*g.UnitID], g)
    }
  }
  lessonsByUnit := make(map[uuid.UUID][]*types.Lesson)
  for _, l := range lessons {
    lessonsByUnit[l.UnitID] = append(lessonsByUnit[l.UnitID], l)
  }

  outline := &CourseOutline{Course: course, Units: make([]*UnitOutline, 0, len(units))}
  for _, u := range units {
    uo := &UnitOutline{
      Unit:        u,
      Lessons:     make([]*LessonOutline, 0, len(lessonsByUnit[u.ID])),
      UnitQuizzes: quizzesByUnit[u.ID],
      UnitGames:   gamesByUnit[u.ID],
    }
    for _, l := range lessonsByUnit[u.ID] {
      uo.Lessons = append(uo.Lessons, &LessonOutline{
        Lesson:  l,
        Quizzes: quizzesByLesson[l.ID],
        Games:   gamesByLesson[l.ID],
      })
    }
    outline.Units = append(outline.Units, uo)
  }
  return outline, nil
}

func (cs *catalogService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error) {
  quizzes, err := cs.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
  if err != nil {
    return nil, fmt.Errorf("retrieve quiz: %w", err)
  }
  if len(quizzes) == 0 {
    return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
  }
  return quizzes[0], nil
}

func (cs *catalogService) GetMatchingGame(ctx context.Context, gameID uuid.UUID) (*types.MatchingGame, error) {
  games, err := cs.matchingGameRepo.GetByIDs(ctx, nil, []uuid.UUID{gameID})
  if err != nil {
    return nil, fmt.Errorf("retrieve matching game: %w", err)
  }
  if len(games) == 0 {
    return nil, fmt.Errorf("%w: matching game %s", ErrNotFound, gameID)
  }
  return games[0], nil
}

func (cs *catalogService) MyCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
  ids, err := touchedCourseIDs(ctx, cs.courseRepo, userID)
  if err != nil {
    return nil, err
  }
  if len(ids) == 0 {
    return []*types.Course{}, nil
  }
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, ids)
  if err != nil {
    return nil, fmt.Errorf("retrieve my courses: %w", err)
  }
  return courses, nil
}

// touchedCourseIDs is the union of the enrollment leg and the three "activity"
// legs: lesson progress, lesson quiz attempts and unit quiz attempts. Shared
// with the dashboard.
func touchedCourseIDs(ctx context.Context, courseRepo repos.CourseRepo, userID uuid.UUID) ([]uuid.UUID, error) {
  enrolledIDs, err := courseRepo.IDsWithEnrollmentByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("courses with enrollment: %w", err)
  }
  progressIDs, err := courseRepo.IDsWithLessonProgressByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("courses with lesson progress: %w", err)
  }
  lessonQuizIDs, err := courseRepo.IDsWithLessonQuizAttemptsByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("courses with lesson quiz attempts: %w", err)
  }
  unitQuizIDs, err := courseRepo.IDsWithUnitQuizAttemptsByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("courses with unit quiz attempts: %w", err)
  }

  seen := make(map[uuid.UUID]struct{})
  out := make([]uuid.UUID, 0, len(enrolledIDs)+len(progressIDs)+len(lessonQuizIDs)+len(unitQuizIDs))
  for _, set := range [][]uuid.UUID{enrolledIDs, progressIDs, lessonQuizIDs, unitQuizIDs} {
    for _, id := range set {
      if _, ok := seen[id]; !ok {
        seen[id] = struct{}{}
        out = append(out, id)
      }
    }
  }
  return out, nil
}
