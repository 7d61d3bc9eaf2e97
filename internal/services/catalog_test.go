package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/easylearn/easylearn-backend/internal/types"
)

func TestCatalog_CourseOutlineOrdersAndScopesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Structured Course", false)
	unit2 := env.createUnit(t, course, "Second", 2)
	unit1 := env.createUnit(t, course, "First", 1)
	lessonB := env.createLesson(t, unit1, "B", 2)
	lessonA := env.createLesson(t, unit1, "A", 1)

	env.createQuiz(t, mustLessonScope(t, lessonA.ID), "lesson quiz", []int{10})
	env.createQuiz(t, mustUnitScope(t, unit1.ID), "unit quiz", []int{10})

	outline, err := env.catalogService().GetCourseOutline(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCourseOutline: %v", err)
	}
	if len(outline.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(outline.Units))
	}
	if outline.Units[0].Unit.ID != unit1.ID || outline.Units[1].Unit.ID != unit2.ID {
		t.Fatal("units must come back in sort order")
	}
	first := outline.Units[0]
	if len(first.Lessons) != 2 || first.Lessons[0].Lesson.ID != lessonA.ID || first.Lessons[1].Lesson.ID != lessonB.ID {
		t.Fatal("lessons must come back in sort order")
	}
	if len(first.Lessons[0].Quizzes) != 1 {
		t.Fatalf("expected 1 quiz on lesson A, got %d", len(first.Lessons[0].Quizzes))
	}
	if len(first.UnitQuizzes) != 1 {
		t.Fatalf("expected 1 unit quiz, got %d", len(first.UnitQuizzes))
	}
	if len(first.Lessons[1].Quizzes) != 0 {
		t.Fatal("lesson B has no quizzes")
	}
}

func TestCatalog_ListCoursesFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category := &types.Category{ID: uuid.New(), Name: "Programming"}
	if _, err := env.categoryRepo.Create(ctx, nil, []*types.Category{category}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	inCategory := env.createCourse(t, "Go in Practice", false)
	inCategory.CategoryID = &category.ID
	if err := env.db.Save(inCategory).Error; err != nil {
		t.Fatalf("assign category: %v", err)
	}
	env.createCourse(t, "Cooking 101", false)

	catalog := env.catalogService()

	byCategory, err := catalog.ListCourses(ctx, &category.ID, "")
	if err != nil {
		t.Fatalf("ListCourses by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != inCategory.ID {
		t.Fatalf("expected only the categorized course, got %d rows", len(byCategory))
	}

	bySearch, err := catalog.ListCourses(ctx, nil, "Practice")
	if err != nil {
		t.Fatalf("ListCourses by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != inCategory.ID {
		t.Fatalf("expected title search to match one course, got %d rows", len(bySearch))
	}
}

func TestCatalog_GetQuizPreloadsQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Quiz Course", false)
	unit := env.createUnit(t, course, "Unit", 1)
	quiz, _ := env.createQuiz(t, mustUnitScope(t, unit.ID), "loaded quiz", []int{10, 5})

	loaded, err := env.catalogService().GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if len(loaded.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(loaded.Questions))
	}
	for _, q := range loaded.Questions {
		if len(q.Choices) != 2 {
			t.Fatalf("expected choices preloaded, got %d", len(q.Choices))
		}
	}

	if _, err := env.catalogService().GetQuiz(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_MyCoursesUnionsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ella")

	// Course touched via lesson progress.
	progressCourse := env.createCourse(t, "Progress Course", false)
	pUnit := env.createUnit(t, progressCourse, "U", 1)
	pLesson := env.createLesson(t, pUnit, "L", 1)
	if _, err := env.attemptService().CompleteLesson(ctx, user.ID, pLesson.ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	// Course touched via a unit quiz attempt.
	quizCourse := env.createCourse(t, "Quiz Course", false)
	qUnit := env.createUnit(t, quizCourse, "U", 1)
	quiz, _ := env.createQuiz(t, mustUnitScope(t, qUnit.ID), "q", []int{10})
	env.createAttempt(t, user.ID, quiz.ID, 10, 10)

	// Course enrolled in but never opened still belongs to the user.
	enrolledCourse := env.createCourse(t, "Enrolled Course", false)
	if _, err := env.accessService().EnrollInCourse(ctx, user.ID, enrolledCourse.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	// Untouched course must not appear.
	env.createCourse(t, "Untouched", false)

	courses, err := env.catalogService().MyCourses(ctx, user.ID)
	if err != nil {
		t.Fatalf("MyCourses: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 courses in the union, got %d", len(courses))
	}
	got := map[uuid.UUID]bool{}
	for _, c := range courses {
		got[c.ID] = true
	}
	if !got[progressCourse.ID] || !got[quizCourse.ID] {
		t.Fatal("expected both touched courses in the union")
	}
	if !got[enrolledCourse.ID] {
		t.Fatal("an enrollment with no activity must still surface the course")
	}
}
