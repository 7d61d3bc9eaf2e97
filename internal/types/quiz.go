package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	QuizTypeLesson = "LESSON"
	QuizTypeUnit   = "UNIT"
)

type Quiz struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string      `gorm:"not null;column:title" json:"title"`
	QuizType  string      `gorm:"not null;column:quiz_type" json:"quiz_type"`
	LessonID  *uuid.UUID  `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	Lesson    *Lesson     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	UnitID    *uuid.UUID  `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Unit      *Unit       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	SortOrder int         `gorm:"not null;default:0;column:sort_order" json:"order"`
	Questions []*Question `gorm:"foreignKey:QuizID;references:ID" json:"questions,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (Quiz) TableName() string { return "quiz" }

// QuizScope is the validated lesson-or-unit attachment of a quiz or matching
// game. The storage schema keeps a type tag plus two nullable foreign keys;
// every write path goes through a scope so the tag and the populated key can
// never disagree. Read paths trust the tag alone.
type QuizScope struct {
	scopeType string
	lessonID  uuid.UUID
	unitID    uuid.UUID
}

func LessonScope(lessonID uuid.UUID) (QuizScope, error) {
	if lessonID == uuid.Nil {
		return QuizScope{}, fmt.Errorf("lesson scope requires a lesson id")
	}
	return QuizScope{scopeType: QuizTypeLesson, lessonID: lessonID}, nil
}

func UnitScope(unitID uuid.UUID) (QuizScope, error) {
	if unitID == uuid.Nil {
		return QuizScope{}, fmt.Errorf("unit scope requires a unit id")
	}
	return QuizScope{scopeType: QuizTypeUnit, unitID: unitID}, nil
}

func (s QuizScope) Type() string { return s.scopeType }

// Apply sets the tag and exactly one foreign key on the quiz.
func (s QuizScope) Apply(q *Quiz) {
	q.QuizType = s.scopeType
	q.LessonID = nil
	q.UnitID = nil
	switch s.scopeType {
	case QuizTypeLesson:
		id := s.lessonID
		q.LessonID = &id
	case QuizTypeUnit:
		id := s.unitID
		q.UnitID = &id
	}
}

// ApplyToGame mirrors Apply for matching games, which share the same scoping
// scheme.
func (s QuizScope) ApplyToGame(g *MatchingGame) {
	g.GameType = s.scopeType
	g.LessonID = nil
	g.UnitID = nil
	switch s.scopeType {
	case QuizTypeLesson:
		id := s.lessonID
		g.LessonID = &id
	case QuizTypeUnit:
		id := s.unitID
		g.UnitID = &id
	}
}
