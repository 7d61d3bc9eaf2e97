package types

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID      uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz        *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	Text        string    `gorm:"type:text;not null;column:text" json:"text"`
	Points      int       `gorm:"not null;default:10;column:points" json:"points"`
	Explanation *string   `gorm:"type:text;column:explanation" json:"explanation,omitempty"`
	Choices     []*Choice `gorm:"foreignKey:QuestionID;references:ID" json:"choices,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string { return "question" }
