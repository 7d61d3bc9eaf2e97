package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/easylearn/easylearn-backend/internal/db"
	"github.com/easylearn/easylearn-backend/internal/logger"
	"github.com/easylearn/easylearn-backend/internal/repos"
	"github.com/easylearn/easylearn-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return gormDB
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo         repos.UserRepo
	userTokenRepo    repos.UserTokenRepo
	categoryRepo     repos.CategoryRepo
	courseRepo       repos.CourseRepo
	unitRepo         repos.UnitRepo
	lessonRepo       repos.LessonRepo
	quizRepo         repos.QuizRepo
	questionRepo     repos.QuestionRepo
	matchingGameRepo repos.MatchingGameRepo
	enrollmentRepo   repos.EnrollmentRepo
	attemptRepo      repos.QuizAttemptRepo
	progressRepo     repos.LessonProgressRepo
	groupRepo        repos.GroupRepo
	membershipRepo   repos.MembershipRepo
	noticeRepo       repos.NoticeRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gormDB := newTestDB(t)
	log := newTestLogger(t)
	return &testEnv{
		db:               gormDB,
		log:              log,
		userRepo:         repos.NewUserRepo(gormDB, log),
		userTokenRepo:    repos.NewUserTokenRepo(gormDB, log),
		categoryRepo:     repos.NewCategoryRepo(gormDB, log),
		courseRepo:       repos.NewCourseRepo(gormDB, log),
		unitRepo:         repos.NewUnitRepo(gormDB, log),
		lessonRepo:       repos.NewLessonRepo(gormDB, log),
		quizRepo:         repos.NewQuizRepo(gormDB, log),
		questionRepo:     repos.NewQuestionRepo(gormDB, log),
		matchingGameRepo: repos.NewMatchingGameRepo(gormDB, log),
		enrollmentRepo:   repos.NewEnrollmentRepo(gormDB, log),
		attemptRepo:      repos.NewQuizAttemptRepo(gormDB, log),
		progressRepo:     repos.NewLessonProgressRepo(gormDB, log),
		groupRepo:        repos.NewGroupRepo(gormDB, log),
		membershipRepo:   repos.NewMembershipRepo(gormDB, log),
		noticeRepo:       repos.NewNoticeRepo(gormDB, log),
	}
}

func (e *testEnv) scoringService() ScoringService {
	return NewScoringService(e.db, e.log, e.unitRepo, e.courseRepo, e.quizRepo, e.questionRepo, e.attemptRepo)
}

func (e *testEnv) attemptService() AttemptService {
	return NewAttemptService(e.db, e.log, e.quizRepo, e.lessonRepo, e.attemptRepo, e.progressRepo, e.groupRepo, nil)
}

func (e *testEnv) groupService() GroupService {
	return NewGroupService(e.db, e.log, e.groupRepo, e.membershipRepo, e.courseRepo, nil)
}

func (e *testEnv) leaderboardService() LeaderboardService {
	return NewLeaderboardService(e.db, e.log, e.groupRepo, e.membershipRepo, e.quizRepo, e.attemptRepo, nil)
}

func (e *testEnv) accessService() AccessService {
	return NewAccessService(e.db, e.log, e.courseRepo, e.unitRepo, e.lessonRepo, e.quizRepo, e.matchingGameRepo, e.enrollmentRepo)
}

func (e *testEnv) catalogService() CatalogService {
	return NewCatalogService(e.db, e.log, e.categoryRepo, e.courseRepo, e.unitRepo, e.lessonRepo, e.quizRepo, e.matchingGameRepo)
}

func (e *testEnv) dashboardService() DashboardService {
	return NewDashboardService(e.db, e.log, e.userRepo, e.courseRepo, e.attemptRepo, e.progressRepo, e.noticeRepo)
}

func (e *testEnv) createUser(t *testing.T, username string) *types.User {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if _, err := e.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, title string, premium bool) *types.Course {
	t.Helper()
	course := &types.Course{
		ID:        uuid.New(),
		Title:     title,
		IsPremium: premium,
	}
	if _, err := e.courseRepo.Create(context.Background(), nil, []*types.Course{course}); err != nil {
		t.Fatalf("create course %s: %v", title, err)
	}
	return course
}

func (e *testEnv) createUnit(t *testing.T, course *types.Course, title string, order int) *types.Unit {
	t.Helper()
	unit := &types.Unit{
		ID:        uuid.New(),
		Title:     title,
		CourseID:  course.ID,
		SortOrder: order,
	}
	if _, err := e.unitRepo.Create(context.Background(), nil, []*types.Unit{unit}); err != nil {
		t.Fatalf("create unit %s: %v", title, err)
	}
	return unit
}

func (e *testEnv) createLesson(t *testing.T, unit *types.Unit, title string, order int) *types.Lesson {
	t.Helper()
	lesson := &types.Lesson{
		ID:        uuid.New(),
		Title:     title,
		UnitID:    unit.ID,
		SortOrder: order,
	}
	if _, err := e.lessonRepo.Create(context.Background(), nil, []*types.Lesson{lesson}); err != nil {
		t.Fatalf("create lesson %s: %v", title, err)
	}
	return lesson
}

// createQuiz makes a quiz in the given scope with one question per entry of
// points, each with a correct and a wrong choice.
func (e *testEnv) createQuiz(t *testing.T, scope types.QuizScope, title string, points []int) (*types.Quiz, []*types.Question) {
	t.Helper()
	quiz := &types.Quiz{
		ID:    uuid.New(),
		Title: title,
	}
	scope.Apply(quiz)
	if _, err := e.quizRepo.Create(context.Background(), nil, []*types.Quiz{quiz}); err != nil {
		t.Fatalf("create quiz %s: %v", title, err)
	}

	questions := make([]*types.Question, 0, len(points))
	for i, p := range points {
		question := &types.Question{
			ID:     uuid.New(),
			QuizID: quiz.ID,
			Text:   fmt.Sprintf("%s question %d", title, i+1),
			Points: p,
			Choices: []*types.Choice{
				{ID: uuid.New(), Text: "right", IsCorrect: true},
				{ID: uuid.New(), Text: "wrong", IsCorrect: false},
			},
		}
		for _, c := range question.Choices {
			c.QuestionID = question.ID
		}
		if _, err := e.questionRepo.Create(context.Background(), nil, []*types.Question{question}); err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, question)
	}
	return quiz, questions
}

func correctAnswers(questions []*types.Question) map[uuid.UUID]uuid.UUID {
	answers := make(map[uuid.UUID]uuid.UUID, len(questions))
	for _, q := range questions {
		for _, c := range q.Choices {
			if c.IsCorrect {
				answers[q.ID] = c.ID
			}
		}
	}
	return answers
}

func (e *testEnv) createAttempt(t *testing.T, userID, quizID uuid.UUID, score, total int) {
	t.Helper()
	attempt := &types.UserQuizAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		QuizID:      quizID,
		Score:       score,
		TotalPoints: total,
		AttemptedAt: time.Now(),
	}
	if _, err := e.attemptRepo.Create(context.Background(), nil, []*types.UserQuizAttempt{attempt}); err != nil {
		t.Fatalf("create attempt: %v", err)
	}
}

func mustLessonScope(t *testing.T, lessonID uuid.UUID) types.QuizScope {
	t.Helper()
	scope, err := types.LessonScope(lessonID)
	if err != nil {
		t.Fatalf("lesson scope: %v", err)
	}
	return scope
}

func mustUnitScope(t *testing.T, unitID uuid.UUID) types.QuizScope {
	t.Helper()
	scope, err := types.UnitScope(unitID)
	if err != nil {
		t.Fatalf("unit scope: %v", err)
	}
	return scope
}
