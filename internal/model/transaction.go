package model

import (
	"time"

	"gorm.io/gorm"
)

// Transaction links a payer to an answer being unlocked. It is created by
// the external payment workflow; this service only ever stamps ApprovedAt
// (from the approval event stream) and reads UserID/ApprovedAt for the
// visibility verdict.
type Transaction struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `json:"user_id" gorm:"not null;index"`
	AnswerID uint `json:"answer_id" gorm:"not null;index"`

	Amount   float64 `json:"amount" gorm:"not null;default:0"`
	Currency string  `json:"currency" gorm:"not null;default:'USD'"`

	// Reference is the payment provider's identifier carried by approval events.
	Reference string `json:"reference" gorm:"uniqueIndex;not null"`

	// ApprovedAt non-nil means the payment is confirmed; only then does the
	// transaction count toward unlocking a privated answer.
	ApprovedAt *time.Time `json:"approved_at" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
