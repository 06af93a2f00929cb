package repository

import (
	"errors"

	"github.com/dterira/Quorable/internal/model"
	"gorm.io/gorm"
)

type VoteRepository interface {
	// FindForUser looks up a user's vote on a voteable, including
	// tombstoned votes. Returns (nil, nil) when no vote was ever cast.
	FindForUser(voteableType string, voteableID, userID uint) (*model.Vote, error)

	// Cast upserts the user's vote, reviving a tombstoned one if present.
	Cast(vote *model.Vote) error

	// Clear soft-deletes the user's vote on a voteable.
	Clear(voteableType string, voteableID, userID uint) error

	// Total is the vote aggregate consumed by presentation.
	Total(voteableType string, voteableID uint) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) FindForUser(voteableType string, voteableID, userID uint) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Unscoped().
		Where("voteable_type = ? AND voteable_id = ? AND user_id = ?", voteableType, voteableID, userID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) Cast(vote *model.Vote) error {
	existing, err := r.FindForUser(vote.VoteableType, vote.VoteableID, vote.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(vote).Error
	}

	// Revive and overwrite in place; the unscoped update clears the tombstone.
	res := r.db.Unscoped().Model(&model.Vote{}).Where("id = ?", existing.ID).
		Updates(map[string]any{"value": vote.Value, "deleted_at": nil})
	if res.Error != nil {
		return res.Error
	}
	vote.ID = existing.ID
	return nil
}

func (r *voteRepository) Clear(voteableType string, voteableID, userID uint) error {
	return r.db.
		Where("voteable_type = ? AND voteable_id = ? AND user_id = ?", voteableType, voteableID, userID).
		Delete(&model.Vote{}).Error
}

func (r *voteRepository) Total(voteableType string, voteableID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.Vote{}).
		Where("voteable_type = ? AND voteable_id = ?", voteableType, voteableID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
