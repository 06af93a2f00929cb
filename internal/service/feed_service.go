package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/resource"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const feedCacheTTL = 30 * time.Second

// FeedService builds the questions feed of a single user. The heavy lifting
// (pagination, relation loading) is the repository's; this layer restricts
// to the requested role, supplies the viewer for the transactions-viewable
// closure, formats, and caches briefly.
type FeedService interface {
	QuestionsFeed(userID uint, viewerID *uint, params dto.FeedParams) ([]gin.H, error)
}

type feedService struct {
	users     repository.UserRepository
	questions repository.QuestionRepository
	formatter *resource.Formatter
	rdb       *redis.Client
}

func NewFeedService(
	users repository.UserRepository,
	questions repository.QuestionRepository,
	formatter *resource.Formatter,
	rdb *redis.Client,
) FeedService {
	return &feedService{users: users, questions: questions, formatter: formatter, rdb: rdb}
}

func (s *feedService) QuestionsFeed(userID uint, viewerID *uint, params dto.FeedParams) ([]gin.H, error) {
	// The feed user must hold one of the requested roles; a miss is an
	// empty feed, not an error.
	if _, err := s.users.FindByIDWithRoles(userID, params.Roles); err != nil {
		if repository.IsNotFound(err) {
			return []gin.H{}, nil
		}
		return nil, err
	}

	key := feedCacheKey(userID, viewerID, params)
	if cached := s.cacheGet(key); cached != nil {
		return cached, nil
	}

	questions, err := s.questions.Feed(userID, repository.FeedOptions{
		With:      params.With,
		WithCount: params.WithCount,
		ViewerID:  viewerID,
		Page:      params.Page,
		PerPage:   params.PerPage,
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to build questions feed")
		return nil, err
	}

	opt := resource.Options{
		ViewerID:     viewerID,
		WithViewable: viewerID != nil,
	}
	res := make([]gin.H, 0, len(questions))
	for i := range questions {
		res = append(res, s.formatter.Question(&questions[i], opt))
	}

	s.cacheSet(key, res)
	return res, nil
}

func feedCacheKey(userID uint, viewerID *uint, params dto.FeedParams) string {
	viewer := "anon"
	if viewerID != nil {
		viewer = fmt.Sprint(*viewerID)
	}
	return fmt.Sprintf("feed:%d:%s:%d:%s:%s:%d:%d",
		userID, viewer, params.Roles,
		strings.Join(params.With, ","), strings.Join(params.WithCount, ","),
		params.Page, params.PerPage)
}

func (s *feedService) cacheGet(key string) []gin.H {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil
	}
	var res []gin.H
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil
	}
	return res
}

func (s *feedService) cacheSet(key string, res []gin.H) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.rdb.Set(context.Background(), key, raw, feedCacheTTL).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Feed cache write failed")
	}
}
