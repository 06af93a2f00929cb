package repository

import (
	"errors"
	"time"

	"github.com/dterira/Quorable/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	FindByID(id uint) (*model.Answer, error)
	FindByIDWith(id uint, with []string, viewerID *uint) (*model.Answer, error)

	// FindByIDUnscoped loads an answer even when soft-deleted; restore
	// authorization needs the owner of a tombstoned record.
	FindByIDUnscoped(id uint) (*model.Answer, error)

	Update(answer *model.Answer) error
	Delete(id uint) error
	Restore(id uint) error

	// SetBest stamps or clears is_best_at without touching updated_at; the
	// best-flag toggle is carved out of normal update auditing.
	SetBest(id uint, best bool) error

	// FindPublicByQuestion returns non-privated answers for a question,
	// best answers first, then most recent.
	FindPublicByQuestion(questionID uint) ([]model.Answer, error)
	FindBestByQuestion(questionID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// answerPreloads whitelists the relation names requests may ask for.
var answerPreloads = map[string]string{
	"user":     "User",
	"question": "Question",
	"votes":    "Votes",
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByIDWith(id uint, with []string, viewerID *uint) (*model.Answer, error) {
	q := r.db
	for _, name := range with {
		if preload, ok := answerPreloads[name]; ok {
			q = q.Preload(preload)
		}
		// The transactions-viewable relation is always scoped to the
		// viewer's own approved transactions.
		if name == "transactionsViewable" && viewerID != nil {
			uid := *viewerID
			q = q.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "user_id", "answer_id").
					Where("user_id = ? AND approved_at IS NOT NULL", uid)
			})
		}
	}
	var answer model.Answer
	if err := q.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByIDUnscoped(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.Unscoped().First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) Delete(id uint) error {
	return r.db.Delete(&model.Answer{}, id).Error
}

func (r *answerRepository) Restore(id uint) error {
	res := r.db.Unscoped().Model(&model.Answer{}).Where("id = ?", id).Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *answerRepository) SetBest(id uint, best bool) error {
	var stamp any
	if best {
		stamp = time.Now()
	}
	res := r.db.Model(&model.Answer{}).Where("id = ?", id).UpdateColumn("is_best_at", stamp)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// bestThenRecent is the canonical answer ordering.
const bestThenRecent = "is_best_at DESC NULLS LAST, created_at DESC"

func (r *answerRepository) FindPublicByQuestion(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Where("question_id = ?", questionID).
		Where("privated_at IS NULL").
		Order(bestThenRecent).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindBestByQuestion(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Where("question_id = ?", questionID).
		Where("is_best_at IS NOT NULL").
		Order(bestThenRecent).
		Find(&answers).Error
	return answers, err
}

// IsNotFound reports whether err is the store's record-absent error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
