package service

import (
	"mime/multipart"
	"time"

	"github.com/dterira/Quorable/internal/apperr"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/upload"
	"github.com/dterira/Quorable/internal/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const msgQuestionNotFound = "Question not found."

type QuestionService interface {
	Create(viewerID uint, req dto.SaveQuestionRequest, img *multipart.FileHeader) (*model.Question, error)
	Update(viewerID, id uint, req dto.SaveQuestionRequest, img *multipart.FileHeader) (*model.Question, error)
	Get(id uint, with []string, viewerID *uint) (*model.Question, error)
	List(viewerID *uint, params dto.FeedParams) ([]model.Question, error)
	Delete(viewerID uint, viewerRoles int, id uint) error
	Restore(viewerID uint, viewerRoles int, id uint) error
}

type questionService struct {
	questions  repository.QuestionRepository
	storage    upload.Storage
	moderation ModerationService
	db         *gorm.DB
}

func NewQuestionService(
	questions repository.QuestionRepository,
	storage upload.Storage,
	moderation ModerationService,
	db *gorm.DB,
) QuestionService {
	return &questionService{
		questions:  questions,
		storage:    storage,
		moderation: moderation,
		db:         db,
	}
}

func validateQuestionSave(req dto.SaveQuestionRequest, creating bool) error {
	if creating || req.Title != nil {
		title := ""
		if req.Title != nil {
			title = *req.Title
		}
		if err := validation.Question.Field("title", title); err != nil {
			return err
		}
	}
	if creating || req.Content != nil {
		content := ""
		if req.Content != nil {
			content = *req.Content
		}
		if err := validation.Question.Field("content", content); err != nil {
			return err
		}
	}
	return nil
}

func applyQuestionFields(question *model.Question, req dto.SaveQuestionRequest) {
	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Urgent != nil {
		if *req.Urgent {
			if question.UrgentAt == nil {
				now := time.Now()
				question.UrgentAt = &now
			}
		} else {
			question.UrgentAt = nil
		}
	}
}

func (s *questionService) Create(viewerID uint, req dto.SaveQuestionRequest, img *multipart.FileHeader) (*model.Question, error) {
	if err := validateQuestionSave(req, true); err != nil {
		return nil, err
	}

	question := &model.Question{UserID: viewerID}
	applyQuestionFields(question, req)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		if req.Tags != nil {
			if err := s.questions.SyncTags(tx, question, *req.Tags); err != nil {
				return err
			}
		}
		return s.attachImage(tx, question, img)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, err
	}

	s.moderation.ReviewAsync("question", question.ID, question.Title+"\n"+question.Content)
	return question, nil
}

func (s *questionService) Update(viewerID, id uint, req dto.SaveQuestionRequest, img *multipart.FileHeader) (*model.Question, error) {
	question, err := s.questions.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(msgQuestionNotFound)
		}
		return nil, err
	}
	if question.UserID != viewerID {
		return nil, apperr.Forbidden("You do not own this question.")
	}

	if err := validateQuestionSave(req, false); err != nil {
		return nil, err
	}

	applyQuestionFields(question, req)

	// Field update, tag sync and upload reference land atomically.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if req.Tags != nil {
			if err := s.questions.SyncTags(tx, question, *req.Tags); err != nil {
				return err
			}
		}
		return s.attachImage(tx, question, img)
	})
	if err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, err
	}

	s.moderation.ReviewAsync("question", question.ID, question.Title+"\n"+question.Content)
	return question, nil
}

func (s *questionService) attachImage(tx *gorm.DB, question *model.Question, img *multipart.FileHeader) error {
	if img == nil {
		return nil
	}
	src, err := s.storage.Store(img, "questions/")
	if err != nil {
		return err
	}
	question.ImgSrc = &src
	return tx.Model(question).Update("img_src", src).Error
}

func (s *questionService) Get(id uint, with []string, viewerID *uint) (*model.Question, error) {
	question, err := s.questions.FindByIDWith(id, with, viewerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(msgQuestionNotFound)
		}
		return nil, err
	}
	return question, nil
}

func (s *questionService) List(viewerID *uint, params dto.FeedParams) ([]model.Question, error) {
	return s.questions.List(repository.FeedOptions{
		With:      params.With,
		WithCount: params.WithCount,
		ViewerID:  viewerID,
		Page:      params.Page,
		PerPage:   params.PerPage,
	})
}

func (s *questionService) Delete(viewerID uint, viewerRoles int, id uint) error {
	question, err := s.questions.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound(msgQuestionNotFound)
		}
		return err
	}
	if question.UserID != viewerID && viewerRoles&model.RoleModerator == 0 {
		return apperr.Forbidden("You do not own this question.")
	}
	return s.questions.Delete(id)
}

func (s *questionService) Restore(viewerID uint, viewerRoles int, id uint) error {
	// The record is tombstoned, so ownership has to be read unscoped.
	question, err := s.questions.FindByIDUnscoped(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound(msgQuestionNotFound)
		}
		return err
	}
	if question.UserID != viewerID && viewerRoles&model.RoleModerator == 0 {
		return apperr.Forbidden("You do not own this question.")
	}
	return s.questions.Restore(id)
}
