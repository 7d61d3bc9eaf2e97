package types

import (
	"time"

	"github.com/google/uuid"
)

// UserEnrollment grants a user access to a premium course's content. The
// (user, course) unique index is the backstop for the idempotent enroll path.
type UserEnrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"course_id"`
	Course     *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	EnrolledAt time.Time `gorm:"not null;column:enrolled_at" json:"enrolled_at"`
}

func (UserEnrollment) TableName() string { return "user_enrollment" }
