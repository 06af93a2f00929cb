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

const msgAnswerNotFound = "Answer not found."
const msgQuestionMissing = "Oops! The question was not found."

type AnswerService interface {
	Create(viewerID uint, req dto.SaveAnswerRequest, img *multipart.FileHeader) (*model.Answer, error)
	Update(viewerID, id uint, req dto.SaveAnswerRequest, img *multipart.FileHeader) (*model.Answer, error)
	Get(id uint, with []string, viewerID *uint) (*model.Answer, error)
	Delete(viewerID uint, viewerRoles int, id uint) error
	Restore(viewerID uint, viewerRoles int, id uint) error
	SetBest(viewerID, id uint, best bool) error
}

type answerService struct {
	answers    repository.AnswerRepository
	questions  repository.QuestionRepository
	storage    upload.Storage
	moderation ModerationService
	db         *gorm.DB
}

func NewAnswerService(
	answers repository.AnswerRepository,
	questions repository.QuestionRepository,
	storage upload.Storage,
	moderation ModerationService,
	db *gorm.DB,
) AnswerService {
	return &answerService{
		answers:    answers,
		questions:  questions,
		storage:    storage,
		moderation: moderation,
		db:         db,
	}
}

// validateAnswerSave runs the declarative rules. Price is required with
// make_private and bounds-checked whenever supplied; currency is required
// once the price-bearing flow is engaged.
func validateAnswerSave(req dto.SaveAnswerRequest, creating bool) error {
	if creating || req.Content != nil {
		content := ""
		if req.Content != nil {
			content = *req.Content
		}
		if err := validation.Answer.Field("content", content); err != nil {
			return err
		}
	}

	if req.MakePrivate {
		if req.Price == nil {
			return validation.Answer.Fail("price", "required_with")
		}
		if req.Currency == nil || *req.Currency == "" {
			return validation.Answer.Fail("currency", "required")
		}
	}
	if req.Price != nil {
		if err := validation.Answer.Field("price", *req.Price); err != nil {
			return err
		}
	}
	return nil
}

// applyAnswerFields copies supplied fields onto the record. On update a
// supplied question_id is applied without re-checking existence.
func applyAnswerFields(answer *model.Answer, req dto.SaveAnswerRequest) {
	if req.QuestionID != nil {
		answer.QuestionID = *req.QuestionID
	}
	if req.Content != nil {
		answer.Content = *req.Content
	}
	if req.Price != nil {
		answer.Price = *req.Price
	}
	if req.Currency != nil {
		answer.Currency = *req.Currency
	}
}

func (s *answerService) Create(viewerID uint, req dto.SaveAnswerRequest, img *multipart.FileHeader) (*model.Answer, error) {
	if err := validateAnswerSave(req, true); err != nil {
		return nil, err
	}

	// The parent question is validated by existence, and only at creation
	// time; updates never re-require it.
	if req.QuestionID == nil {
		return nil, apperr.RelationRequired(msgQuestionMissing)
	}
	if _, err := s.questions.FindByID(*req.QuestionID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.RelationRequired(msgQuestionMissing)
		}
		return nil, err
	}

	answer := &model.Answer{UserID: viewerID, Currency: "USD"}
	applyAnswerFields(answer, req)
	if req.MakePrivate {
		now := time.Now()
		answer.PrivatedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return s.attachImage(tx, answer, img)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create answer")
		return nil, err
	}

	s.moderation.ReviewAsync("answer", answer.ID, answer.Content)
	return answer, nil
}

func (s *answerService) Update(viewerID, id uint, req dto.SaveAnswerRequest, img *multipart.FileHeader) (*model.Answer, error) {
	answer, err := s.answers.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(msgAnswerNotFound)
		}
		return nil, err
	}
	if answer.UserID != viewerID {
		return nil, apperr.Forbidden("You do not own this answer.")
	}

	if err := validateAnswerSave(req, false); err != nil {
		return nil, err
	}

	applyAnswerFields(answer, req)

	// Toggling privacy on repeatedly preserves the original privatization
	// moment; toggling it off clears the timestamp unconditionally.
	if req.MakePrivate {
		if answer.PrivatedAt == nil {
			now := time.Now()
			answer.PrivatedAt = &now
		}
	} else {
		answer.PrivatedAt = nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(answer).Error; err != nil {
			return err
		}
		return s.attachImage(tx, answer, img)
	})
	if err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("Failed to update answer")
		return nil, err
	}

	s.moderation.ReviewAsync("answer", answer.ID, answer.Content)
	return answer, nil
}

func (s *answerService) attachImage(tx *gorm.DB, answer *model.Answer, img *multipart.FileHeader) error {
	if img == nil {
		return nil
	}
	src, err := s.storage.Store(img, "answers/")
	if err != nil {
		return err
	}
	answer.ImgSrc = &src
	return tx.Model(answer).Update("img_src", src).Error
}

func (s *answerService) Get(id uint, with []string, viewerID *uint) (*model.Answer, error) {
	answer, err := s.answers.FindByIDWith(id, with, viewerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(msgAnswerNotFound)
		}
		return nil, err
	}
	return answer, nil
}

func (s *answerService) Delete(viewerID uint, viewerRoles int, id uint) error {
	answer, err := s.answers.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound(msgAnswerNotFound)
		}
		return err
	}
	if answer.UserID != viewerID && viewerRoles&model.RoleModerator == 0 {
		return apperr.Forbidden("You do not own this answer.")
	}
	return s.answers.Delete(id)
}

func (s *answerService) Restore(viewerID uint, viewerRoles int, id uint) error {
	// The record is tombstoned, so ownership has to be read unscoped.
	answer, err := s.answers.FindByIDUnscoped(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound(msgAnswerNotFound)
		}
		return err
	}
	if answer.UserID != viewerID && viewerRoles&model.RoleModerator == 0 {
		return apperr.Forbidden("You do not own this answer.")
	}
	return s.answers.Restore(id)
}

// SetBest marks or clears the accepted answer. Only the question owner may
// do this, and the write skips the answer's generic update timestamp.
func (s *answerService) SetBest(viewerID, id uint, best bool) error {
	answer, err := s.answers.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound(msgAnswerNotFound)
		}
		return err
	}

	question, err := s.questions.FindByID(answer.QuestionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("Question not found.")
		}
		return err
	}
	if question.UserID != viewerID {
		return apperr.Forbidden("Only the question owner can mark a best answer.")
	}

	return s.answers.SetBest(id, best)
}
