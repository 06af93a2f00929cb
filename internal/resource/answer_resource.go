package resource

import (
	"time"

	"github.com/dterira/Quorable/internal/access"
	"github.com/dterira/Quorable/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Answer formats an answer plus whatever related entities the caller loaded.
// Relations that were not loaded are omitted entirely, never errored on.
func (f *Formatter) Answer(a *model.Answer, opt Options) gin.H {
	res := gin.H{
		"id":          a.ID,
		"user_id":     a.UserID,
		"question_id": a.QuestionID,
		"content":     a.Content,
		"img_src":     a.ImgSrc,
		"price":       a.Price,
		"currency":    a.Currency,
		"privated_at": a.PrivatedAt,
	}

	if total, err := f.votes.Total(model.VoteableAnswer, a.ID); err == nil {
		res["votes_total"] = total
	} else {
		log.Error().Err(err).Uint("answerID", a.ID).Msg("Failed to aggregate votes for answer")
	}

	if a.User.ID != 0 {
		res["user"] = f.User(&a.User)
	}
	if a.Question.ID != 0 {
		res["question"] = f.Question(&a.Question, Options{})
	}

	if opt.ViewerID != nil {
		uid := *opt.ViewerID

		// The viewer's own vote, tombstoned ones included; explicit null
		// when none was ever cast.
		vote, err := f.votes.FindForUser(model.VoteableAnswer, a.ID, uid)
		if err == nil {
			if vote != nil {
				res["vote"] = vote
			} else {
				res["vote"] = nil
			}
		} else {
			log.Error().Err(err).Uint("answerID", a.ID).Uint("userID", uid).Msg("Failed to look up viewer vote")
		}

		if opt.WithViewable {
			if a.Transactions != nil {
				res["transactions_viewable"] = a.Transactions
			}
			count, err := f.approvedCount(a, uid)
			if err == nil {
				viewable := access.Viewable(uid, a.UserID, a.PrivatedAt, count)
				res["is_viewable"] = viewable
				if !viewable {
					// Gated content is stripped, not just flagged. Price and
					// currency stay: they are the purchase offer.
					res["content"] = ""
					res["img_src"] = nil
				}
			} else {
				log.Error().Err(err).Uint("answerID", a.ID).Msg("Failed to count approved transactions")
			}
		}
	}

	createdAt, updatedAt := a.CreatedAt, a.UpdatedAt
	humanizeDates(res, map[string]*time.Time{
		"deleted_at": tombstone(a.DeletedAt),
		"created_at": &createdAt,
		"updated_at": &updatedAt,
		"is_best_at": a.IsBestAt,
	})
	return res
}

// approvedCount prefers the viewer-scoped transactions preloaded by the
// feed query; standalone loads fall back to a scoped count query.
func (f *Formatter) approvedCount(a *model.Answer, viewerID uint) (int64, error) {
	if a.Transactions != nil {
		return int64(len(a.Transactions)), nil
	}
	return f.transactions.CountApproved(a.ID, viewerID)
}
