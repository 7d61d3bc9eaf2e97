package types

import (
	"time"

	"github.com/google/uuid"
)

type GamePair struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	GameID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"game_id"`
	Game      *MatchingGame `gorm:"constraint:OnDelete:CASCADE;foreignKey:GameID;references:ID" json:"game,omitempty"`
	ItemOne   string        `gorm:"not null;column:item_one" json:"item_one"`
	ItemTwo   string        `gorm:"not null;column:item_two" json:"item_two"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func (GamePair) TableName() string { return "game_pair" }
