package resource

import (
	"time"

	"github.com/dterira/Quorable/internal/model"
	"github.com/gin-gonic/gin"
)

// Question formats a question with its loaded relations: nested user,
// recursive answers (viewer-aware per answer) and tags.
func (f *Formatter) Question(q *model.Question, opt Options) gin.H {
	res := gin.H{
		"id":      q.ID,
		"user_id": q.UserID,
		"title":   q.Title,
		"content": q.Content,
		"img_src": q.ImgSrc,
	}

	if q.AnswersCount != nil {
		res["answers_count"] = *q.AnswersCount
	}

	if q.User.ID != 0 {
		res["user"] = f.User(&q.User)
	}

	if q.Answers != nil {
		answers := make([]gin.H, 0, len(q.Answers))
		for i := range q.Answers {
			answers = append(answers, f.Answer(&q.Answers[i], opt))
		}
		res["answers"] = answers
	}

	if q.Tags != nil {
		res["tags"] = q.Tags
	}

	createdAt, updatedAt := q.CreatedAt, q.UpdatedAt
	humanizeDates(res, map[string]*time.Time{
		"deleted_at": tombstone(q.DeletedAt),
		"created_at": &createdAt,
		"updated_at": &updatedAt,
		"urgent_at":  q.UrgentAt,
	})
	return res
}
