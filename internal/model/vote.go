package model

import (
	"time"

	"gorm.io/gorm"
)

// Vote is a polymorphic record: VoteableType/VoteableID point at any entity
// registered in the voteable dispatch table.
type Vote struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	UserID       uint   `json:"user_id" gorm:"not null;index:idx_votes_user"`
	VoteableType string `json:"voteable_type" gorm:"not null;index:idx_votes_voteable"`
	VoteableID   uint   `json:"voteable_id" gorm:"not null;index:idx_votes_voteable"`

	// Value is +1 or -1.
	Value int `json:"value" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
