package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/easylearn/easylearn-backend/internal/types"
)

func TestAccess_PremiumUnitRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "vera")
	course := env.createCourse(t, "Premium Go", true)
	unit := env.createUnit(t, course, "Generics", 1)
	env.createLesson(t, unit, "Type parameters", 1)

	access := env.accessService()

	if _, err := access.GetUnitContent(ctx, user.ID, unit.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden without enrollment, got %v", err)
	}

	// Grant the enrollment directly, as the out-of-band purchase flow would.
	enrollment := &types.UserEnrollment{
		ID:         uuid.New(),
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}
	if _, err := env.enrollmentRepo.Create(ctx, nil, []*types.UserEnrollment{enrollment}); err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	content, err := access.GetUnitContent(ctx, user.ID, unit.ID)
	if err != nil {
		t.Fatalf("GetUnitContent after enrollment: %v", err)
	}
	if len(content.Lessons) != 1 {
		t.Fatalf("expected 1 lesson, got %d", len(content.Lessons))
	}
}

func TestAccess_FreeUnitIsOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "will")
	course := env.createCourse(t, "Free Go", false)
	unit := env.createUnit(t, course, "Basics", 1)

	if _, err := env.accessService().GetUnitContent(ctx, user.ID, unit.ID); err != nil {
		t.Fatalf("free unit should be open: %v", err)
	}
}

func TestAccess_EnrollFreeCourseIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "xena")
	course := env.createCourse(t, "Open Course", false)
	access := env.accessService()

	enrollment, err := access.EnrollInCourse(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if enrollment == nil {
		t.Fatal("first enroll should return the new enrollment")
	}

	repeat, err := access.EnrollInCourse(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("repeat enroll must succeed: %v", err)
	}
	if repeat != nil {
		t.Fatal("repeat enroll should be a no-op")
	}

	courseIDs, err := env.enrollmentRepo.CourseIDsByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("list enrollments: %v", err)
	}
	if len(courseIDs) != 1 {
		t.Fatalf("expected exactly one enrollment row, got %d", len(courseIDs))
	}
}

func TestAccess_EnrollPremiumCourseRefused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "yuri")
	course := env.createCourse(t, "Paid Course", true)

	if _, err := env.accessService().EnrollInCourse(ctx, user.ID, course.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-serve premium enroll, got %v", err)
	}
}

func TestAccess_UnknownUnitIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "zack")

	if _, err := env.accessService().GetUnitContent(context.Background(), user.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
