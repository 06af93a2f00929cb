package model

import (
	"time"

	"gorm.io/gorm"
)

// Role bits. A user may hold several roles at once; feed queries filter by
// bitmask (experts by default).
const (
	RoleAsker     = 1
	RoleModerator = 2
	RoleExpert    = 4
)

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	FName string `json:"fname" gorm:"not null"`
	MName string `json:"mname,omitempty"`
	LName string `json:"lname" gorm:"not null"`

	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	EmailVerificationCode string     `json:"-"`
	EmailVerifiedAt       *time.Time `json:"email_verified_at,omitempty"`

	Roles int `json:"roles" gorm:"not null;default:1"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:UserID"`
	Answers   []Answer   `json:"answers,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasRole reports whether the user holds any of the given role bits.
func (u *User) HasRole(roles int) bool {
	return u.Roles&roles != 0
}
