package repository

import (
	"strings"

	"github.com/dterira/Quorable/internal/model"
	"gorm.io/gorm"
)

// FeedOptions carries the caller's relation-inclusion lists and the viewer
// identity the transactions-viewable closure is scoped to.
type FeedOptions struct {
	With      []string
	WithCount []string
	ViewerID  *uint
	Page      int
	PerPage   int
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWith(id uint, with []string, viewerID *uint) (*model.Question, error)

	// FindByIDUnscoped loads a question even when soft-deleted.
	FindByIDUnscoped(id uint) (*model.Question, error)

	Update(question *model.Question) error
	Delete(id uint) error
	Restore(id uint) error

	// SyncTags replaces the question's tag set, teacher-of-record for the
	// tags pivot. Runs on the given handle so callers can keep it inside a
	// larger transaction.
	SyncTags(tx *gorm.DB, question *model.Question, tagIDs []uint) error

	// Feed returns a user's questions with the requested relations loaded.
	Feed(userID uint, opts FeedOptions) ([]model.Question, error)

	// List pages through all questions, newest first.
	List(opts FeedOptions) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWith(id uint, with []string, viewerID *uint) (*model.Question, error) {
	q := applyQuestionPreloads(r.db, with, viewerID)
	var question model.Question
	if err := q.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDUnscoped(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Unscoped().First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

func (r *questionRepository) Restore(id uint) error {
	res := r.db.Unscoped().Model(&model.Question{}).Where("id = ?", id).Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionRepository) SyncTags(tx *gorm.DB, question *model.Question, tagIDs []uint) error {
	var tags []model.Tag
	if len(tagIDs) > 0 {
		if err := tx.Find(&tags, tagIDs).Error; err != nil {
			return err
		}
	}
	return tx.Model(question).Association("Tags").Replace(tags)
}

func (r *questionRepository) Feed(userID uint, opts FeedOptions) ([]model.Question, error) {
	q := r.questionPage(opts).Where("user_id = ?", userID)

	var questions []model.Question
	err := q.Find(&questions).Error
	return questions, err
}

func (r *questionRepository) List(opts FeedOptions) ([]model.Question, error) {
	var questions []model.Question
	err := r.questionPage(opts).Find(&questions).Error
	return questions, err
}

// questionPage assembles the shared paged query: preloads, newest-first
// ordering, the answers_count subquery and offset/limit.
func (r *questionRepository) questionPage(opts FeedOptions) *gorm.DB {
	q := applyQuestionPreloads(r.db, opts.With, opts.ViewerID).
		Order("created_at DESC")

	for _, name := range opts.WithCount {
		if name == "answers" {
			q = q.Select("questions.*, (SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id AND answers.deleted_at IS NULL) AS answers_count")
		}
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 15
	}
	if opts.Page > 1 {
		q = q.Offset((opts.Page - 1) * perPage)
	}
	return q.Limit(perPage)
}

// applyQuestionPreloads resolves the request's `with` list against a
// whitelist. The transactions-viewable relation is installed only when a
// viewer is present, and the preload is scoped to that viewer's approved
// transactions so no other user's payment history is ever loaded.
func applyQuestionPreloads(db *gorm.DB, with []string, viewerID *uint) *gorm.DB {
	q := db
	wantsAnswers := false
	for _, name := range with {
		if strings.HasPrefix(name, "answers") {
			wantsAnswers = true
		}
		switch name {
		case "user":
			q = q.Preload("User")
		case "tags":
			q = q.Preload("Tags")
		case "answers":
			q = q.Preload("Answers", func(db *gorm.DB) *gorm.DB {
				return db.Order(bestThenRecent)
			})
		case "answers.user":
			q = q.Preload("Answers.User")
		}
	}

	if wantsAnswers && viewerID != nil {
		uid := *viewerID
		q = q.Preload("Answers.Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "answer_id").
				Where("user_id = ? AND approved_at IS NOT NULL", uid)
		})
	}
	return q
}
