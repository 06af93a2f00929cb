package resource

import (
	"time"

	"github.com/dterira/Quorable/internal/model"
	"github.com/gin-gonic/gin"
)

func (f *Formatter) User(u *model.User) gin.H {
	res := gin.H{
		"id":                u.ID,
		"fname":             u.FName,
		"mname":             u.MName,
		"lname":             u.LName,
		"roles":             u.Roles,
		"email_verified_at": u.EmailVerifiedAt,
	}

	createdAt, updatedAt := u.CreatedAt, u.UpdatedAt
	humanizeDates(res, map[string]*time.Time{
		"deleted_at": tombstone(u.DeletedAt),
		"created_at": &createdAt,
		"updated_at": &updatedAt,
	})
	return res
}
