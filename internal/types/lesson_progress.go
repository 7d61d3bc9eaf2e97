package types

import (
	"time"

	"github.com/google/uuid"
)

type UserLessonProgress struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_lesson" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_lesson" json:"lesson_id"`
	Lesson      *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	CompletedAt time.Time `gorm:"not null;column:completed_at" json:"completed_at"`
}

func (UserLessonProgress) TableName() string { return "user_lesson_progress" }
