package types

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null;column:title" json:"title"`
	UnitID         uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	Unit           *Unit     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	SortOrder      int       `gorm:"not null;default:0;column:sort_order" json:"order"`
	YoutubeVideoID *string   `gorm:"column:youtube_video_id" json:"youtube_video_id,omitempty"`
	ArticleBody    *string   `gorm:"type:text;column:article_body" json:"article_body,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }
