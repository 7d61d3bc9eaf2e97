package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserQuizAttempt records the latest submission for a (user, quiz) pair. The
// index is deliberately not unique: replacement is delete-then-insert inside
// one transaction, so the newest row is authoritative. Score and TotalPoints
// are snapshots taken at attempt time and are never recomputed from current
// question points.
type UserQuizAttempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"quiz_id"`
	Quiz        *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	Score       int            `gorm:"not null;column:score" json:"score"`
	TotalPoints int            `gorm:"not null;column:total_points" json:"total_points"`
	Answers     datatypes.JSON `gorm:"type:jsonb;column:answers" json:"answers,omitempty"`
	AttemptedAt time.Time      `gorm:"not null;column:attempted_at" json:"attempted_at"`
}

func (UserQuizAttempt) TableName() string { return "user_quiz_attempt" }
