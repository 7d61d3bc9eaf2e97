package types

import (
	"time"

	"github.com/google/uuid"
)

// LearningGroup is a user-created cohort. Its course set is the curriculum the
// leaderboard scores against.
type LearningGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AdminID;references:ID" json:"admin,omitempty"`
	Courses   []*Course `gorm:"many2many:learning_group_course" json:"courses,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (LearningGroup) TableName() string { return "learning_group" }
