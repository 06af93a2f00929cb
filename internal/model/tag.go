package model

import "time"

type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
