package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchingGame is the non-graded counterpart of Quiz: a pairing exercise with
// no point value, scoped to a lesson or a unit the same way.
type MatchingGame struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string      `gorm:"not null;column:title" json:"title"`
	GameType  string      `gorm:"not null;column:game_type" json:"game_type"`
	LessonID  *uuid.UUID  `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	Lesson    *Lesson     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	UnitID    *uuid.UUID  `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Unit      *Unit       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	SortOrder int         `gorm:"not null;default:0;column:sort_order" json:"order"`
	Pairs     []*GamePair `gorm:"foreignKey:GameID;references:ID" json:"pairs,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (MatchingGame) TableName() string { return "matching_game" }
