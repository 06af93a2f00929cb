package service

import (
	"github.com/dterira/Quorable/internal/apperr"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/validation"
	"gorm.io/gorm"
)

type VoteService interface {
	// Cast records a +1/-1 vote; value 0 clears the viewer's vote.
	Cast(viewerID uint, voteableType string, voteableID uint, value int) (*model.Vote, error)
	Total(voteableType string, voteableID uint) (int64, error)
}

type voteService struct {
	votes repository.VoteRepository
	db    *gorm.DB
}

func NewVoteService(votes repository.VoteRepository, db *gorm.DB) VoteService {
	return &voteService{votes: votes, db: db}
}

func (s *voteService) Cast(viewerID uint, voteableType string, voteableID uint, value int) (*model.Vote, error) {
	// Targets resolve through the dispatch table; unknown kinds are
	// rejected before touching the store.
	proto, ok := model.VoteableTable[voteableType]
	if !ok {
		return nil, validation.Vote.Fail("voteable_type", "exists")
	}

	if value == 0 {
		if err := s.votes.Clear(voteableType, voteableID, viewerID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := validation.Vote.Field("value", value); err != nil {
		return nil, err
	}

	target := proto()
	if err := s.db.First(target, voteableID).Error; err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("Unable to vote on that.")
		}
		return nil, err
	}

	vote := &model.Vote{
		UserID:       viewerID,
		VoteableType: voteableType,
		VoteableID:   voteableID,
		Value:        value,
	}
	if err := s.votes.Cast(vote); err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *voteService) Total(voteableType string, voteableID uint) (int64, error) {
	return s.votes.Total(voteableType, voteableID)
}
