package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Title   string  `json:"title" gorm:"not null"`
	Content string  `json:"content" gorm:"type:text;not null"`
	ImgSrc  *string `json:"img_src,omitempty"`

	// UrgentAt non-nil flags the question for priority in feeds.
	UrgentAt *time.Time `json:"urgent_at,omitempty"`

	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
	Tags    []Tag    `json:"tags,omitempty" gorm:"many2many:question_tags"`

	// AnswersCount is populated by feed queries via a correlated subquery.
	AnswersCount *int64 `json:"answers_count,omitempty" gorm:"->;-:migration"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
