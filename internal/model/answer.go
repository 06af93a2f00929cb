package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is a reply to a Question. An answer may carry a price and be made
// private: PrivatedAt non-nil means its content is access-gated until the
// viewer owns it or holds an approved transaction against it.
type Answer struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	UserID     uint     `json:"user_id" gorm:"not null;index"`
	User       User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	QuestionID uint     `json:"question_id" gorm:"not null;index"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`

	Content  string  `json:"content" gorm:"type:text"`
	ImgSrc   *string `json:"img_src,omitempty"`
	Price    float64 `json:"price" gorm:"not null;default:0"`
	Currency string  `json:"currency" gorm:"not null;default:'USD'"`

	// PrivatedAt is preserved across repeated privacy toggles; its value is
	// the moment the answer was first made private.
	PrivatedAt *time.Time `json:"privated_at" gorm:"index"`
	// IsBestAt non-nil marks the answer as accepted by the question owner.
	IsBestAt *time.Time `json:"is_best_at" gorm:"index"`

	Votes        []Vote        `json:"votes,omitempty" gorm:"polymorphic:Voteable"`
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:AnswerID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
