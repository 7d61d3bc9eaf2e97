package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/easylearn/easylearn-backend/internal/types"
)

func TestDashboard_AggregatesPointsCoursesAndFeeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "jane")
	course := env.createCourse(t, "Dashboard Course", false)
	unit := env.createUnit(t, course, "Unit", 1)
	quiz, _ := env.createQuiz(t, mustUnitScope(t, unit.ID), "quiz", []int{10})
	env.createAttempt(t, user.ID, quiz.ID, 10, 10)

	notices := []*types.Notice{
		{ID: uuid.New(), Title: "Welcome", Body: "hello", IsActive: true},
		{ID: uuid.New(), Title: "Old news", Body: "bye", IsActive: false},
	}
	if _, err := env.noticeRepo.CreateNotices(ctx, nil, notices); err != nil {
		t.Fatalf("create notices: %v", err)
	}
	promotions := []*types.Promotion{
		{ID: uuid.New(), Title: "Sale", IsActive: true},
	}
	if _, err := env.noticeRepo.CreatePromotions(ctx, nil, promotions); err != nil {
		t.Fatalf("create promotions: %v", err)
	}

	data, err := env.dashboardService().Dashboard(ctx, user.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.TotalPoints != 10 {
		t.Fatalf("expected 10 total points, got %d", data.TotalPoints)
	}
	if len(data.MyCourses) != 1 || data.MyCourses[0].ID != course.ID {
		t.Fatalf("expected the attempted course in my courses, got %d rows", len(data.MyCourses))
	}
	if len(data.Notices) != 1 || data.Notices[0].Title != "Welcome" {
		t.Fatalf("expected only the active notice, got %d rows", len(data.Notices))
	}
	if len(data.Promotions) != 1 {
		t.Fatalf("expected 1 promotion, got %d", len(data.Promotions))
	}
}

func TestDashboard_Profile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "kyle")
	course := env.createCourse(t, "Profile Course", false)
	unit := env.createUnit(t, course, "Unit", 1)
	lesson := env.createLesson(t, unit, "Lesson", 1)
	if _, err := env.attemptService().CompleteLesson(ctx, user.ID, lesson.ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	profile, err := env.dashboardService().Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.User.ID != user.ID {
		t.Fatal("profile must return the requested user")
	}
	if profile.CompletedLessons != 1 {
		t.Fatalf("expected 1 completed lesson, got %d", profile.CompletedLessons)
	}
	if profile.TotalPoints != 0 {
		t.Fatalf("expected 0 points, got %d", profile.TotalPoints)
	}
}
