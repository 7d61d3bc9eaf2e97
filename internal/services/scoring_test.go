package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestScoring_UnitAndCoursePoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	course := env.createCourse(t, "Go Basics", false)
	unit := env.createUnit(t, course, "Syntax", 1)
	lesson := env.createLesson(t, unit, "Variables", 1)

	lessonQuiz, _ := env.createQuiz(t, mustLessonScope(t, lesson.ID), "lesson quiz", []int{10})
	unitQuiz, _ := env.createQuiz(t, mustUnitScope(t, unit.ID), "unit quiz", []int{10, 10})

	scoring := env.scoringService()

	summary, err := scoring.UnitPoints(ctx, user.ID, unit.ID)
	if err != nil {
		t.Fatalf("UnitPoints: %v", err)
	}
	if summary.TotalPossible != 30 {
		t.Fatalf("expected 30 possible points, got %d", summary.TotalPossible)
	}
	if summary.Earned != 0 {
		t.Fatalf("expected 0 earned before any attempt, got %d", summary.Earned)
	}

	env.createAttempt(t, user.ID, lessonQuiz.ID, 10, 10)
	env.createAttempt(t, user.ID, unitQuiz.ID, 15, 20)

	summary, err = scoring.UnitPoints(ctx, user.ID, unit.ID)
	if err != nil {
		t.Fatalf("UnitPoints after attempts: %v", err)
	}
	if summary.Earned != 25 {
		t.Fatalf("expected 25 earned, got %d", summary.Earned)
	}

	courseSummary, err := scoring.CoursePoints(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("CoursePoints: %v", err)
	}
	if courseSummary.TotalPossible != 30 || courseSummary.Earned != 25 {
		t.Fatalf("expected 25/30 for the course, got %d/%d", courseSummary.Earned, courseSummary.TotalPossible)
	}
}

func TestScoring_CourseCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "bob")
	course := env.createCourse(t, "Networking", false)
	unit := env.createUnit(t, course, "TCP", 1)
	lesson := env.createLesson(t, unit, "Handshake", 1)
	quiz, _ := env.createQuiz(t, mustLessonScope(t, lesson.ID), "handshake quiz", []int{10})

	scoring := env.scoringService()

	completed, err := scoring.IsCourseCompleted(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("IsCourseCompleted: %v", err)
	}
	if completed {
		t.Fatal("course should not be completed before any attempt")
	}

	env.createAttempt(t, user.ID, quiz.ID, 10, 10)
	completed, err = scoring.IsCourseCompleted(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("IsCourseCompleted after full score: %v", err)
	}
	if !completed {
		t.Fatal("course should be completed with all points earned")
	}
}

func TestScoring_EmptyCourseNeverCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "carol")
	course := env.createCourse(t, "Empty Course", false)

	scoring := env.scoringService()
	completed, err := scoring.IsCourseCompleted(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("IsCourseCompleted: %v", err)
	}
	if completed {
		t.Fatal("a course with no points on offer must never be completed")
	}

	summary, err := scoring.CoursePoints(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("CoursePoints: %v", err)
	}
	if summary.TotalPossible != 0 || summary.Earned != 0 {
		t.Fatalf("expected 0/0, got %d/%d", summary.Earned, summary.TotalPossible)
	}
}

func TestScoring_UnknownScopeIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "dave")

	scoring := env.scoringService()
	if _, err := scoring.UnitPoints(ctx, user.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown unit, got %v", err)
	}
	if _, err := scoring.CoursePoints(ctx, user.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown course, got %v", err)
	}
}
