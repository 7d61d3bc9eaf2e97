package types

import (
	"time"

	"github.com/google/uuid"
)

type GroupMembership struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_group_user" json:"group_id"`
	Group        *LearningGroup `gorm:"constraint:OnDelete:CASCADE;foreignKey:GroupID;references:ID" json:"group,omitempty"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_group_user" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	IsGroupAdmin bool           `gorm:"not null;default:false;column:is_group_admin" json:"is_group_admin"`
	JoinedAt     time.Time      `gorm:"not null;column:joined_at" json:"joined_at"`
}

func (GroupMembership) TableName() string { return "group_membership" }
