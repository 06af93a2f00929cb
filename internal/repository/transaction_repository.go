package repository

import (
	"time"

	"github.com/dterira/Quorable/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindByReference(reference string) (*model.Transaction, error)

	// Approve stamps approved_at for the transaction with the given payment
	// reference. Idempotent: an already-approved transaction keeps its
	// original approval moment.
	Approve(reference string) error

	// CountApproved counts a single user's approved transactions against an
	// answer. The query is deliberately scoped to that user so visibility
	// checks never observe other users' payment history.
	CountApproved(answerID, userID uint) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepository) FindByReference(reference string) (*model.Transaction, error) {
	var tx model.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Approve(reference string) error {
	res := r.db.Model(&model.Transaction{}).
		Where("reference = ? AND approved_at IS NULL", reference).
		UpdateColumn("approved_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish unknown reference from already-approved.
		var count int64
		if err := r.db.Model(&model.Transaction{}).Where("reference = ?", reference).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *transactionRepository) CountApproved(answerID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).
		Where("answer_id = ? AND user_id = ? AND approved_at IS NOT NULL", answerID, userID).
		Count(&count).Error
	return count, err
}
