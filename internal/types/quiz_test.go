package types

import (
	"testing"

	"github.com/google/uuid"
)

func TestQuizScope_ApplySetsTagAndSingleKey(t *testing.T) {
	lessonID := uuid.New()
	unitID := uuid.New()

	lessonScope, err := LessonScope(lessonID)
	if err != nil {
		t.Fatalf("LessonScope: %v", err)
	}
	unitScope, err := UnitScope(unitID)
	if err != nil {
		t.Fatalf("UnitScope: %v", err)
	}

	quiz := &Quiz{}
	lessonScope.Apply(quiz)
	if quiz.QuizType != QuizTypeLesson {
		t.Fatalf("expected tag %q, got %q", QuizTypeLesson, quiz.QuizType)
	}
	if quiz.LessonID == nil || *quiz.LessonID != lessonID {
		t.Fatal("lesson key must be set")
	}
	if quiz.UnitID != nil {
		t.Fatal("unit key must stay empty in lesson scope")
	}

	// Re-scoping the same quiz clears the other key.
	unitScope.Apply(quiz)
	if quiz.QuizType != QuizTypeUnit {
		t.Fatalf("expected tag %q, got %q", QuizTypeUnit, quiz.QuizType)
	}
	if quiz.LessonID != nil {
		t.Fatal("lesson key must be cleared when re-scoping to a unit")
	}
	if quiz.UnitID == nil || *quiz.UnitID != unitID {
		t.Fatal("unit key must be set")
	}
}

func TestQuizScope_RejectsNilIDs(t *testing.T) {
	if _, err := LessonScope(uuid.Nil); err == nil {
		t.Fatal("LessonScope must reject the nil id")
	}
	if _, err := UnitScope(uuid.Nil); err == nil {
		t.Fatal("UnitScope must reject the nil id")
	}
}

func TestQuizScope_ApplyToGame(t *testing.T) {
	unitID := uuid.New()
	scope, err := UnitScope(unitID)
	if err != nil {
		t.Fatalf("UnitScope: %v", err)
	}

	game := &MatchingGame{}
	scope.ApplyToGame(game)
	if game.GameType != QuizTypeUnit {
		t.Fatalf("expected tag %q, got %q", QuizTypeUnit, game.GameType)
	}
	if game.UnitID == nil || *game.UnitID != unitID {
		t.Fatal("unit key must be set on the game")
	}
	if game.LessonID != nil {
		t.Fatal("lesson key must stay empty")
	}
}
