package types

import (
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	ImageURL  string    `gorm:"column:image_url" json:"image_url"`
	LinkURL   string    `gorm:"column:link_url" json:"link_url"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Promotion) TableName() string { return "promotion" }
