// Package factory builds persisted test fixtures with faked attributes.
package factory

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dterira/Quorable/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Factory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) create(entity any) {
	if err := f.db.Create(entity).Error; err != nil {
		panic(err)
	}
}

func (f *Factory) User(overrides ...func(*model.User)) *model.User {
	now := time.Now()
	u := &model.User{
		FName:           gofakeit.FirstName(),
		MName:           gofakeit.FirstName(),
		LName:           gofakeit.LastName(),
		Email:           uuid.NewString() + "@example.com",
		Password:        "secret",
		Roles:           model.RoleAsker,
		EmailVerifiedAt: &now,
	}
	for _, o := range overrides {
		o(u)
	}
	f.create(u)
	return u
}

func (f *Factory) Question(user *model.User, overrides ...func(*model.Question)) *model.Question {
	q := &model.Question{
		UserID:  user.ID,
		Title:   gofakeit.Sentence(6),
		Content: gofakeit.Paragraph(1, 3, 10, " "),
	}
	for _, o := range overrides {
		o(q)
	}
	f.create(q)
	return q
}

func (f *Factory) Answer(user *model.User, question *model.Question, overrides ...func(*model.Answer)) *model.Answer {
	a := &model.Answer{
		UserID:     user.ID,
		QuestionID: question.ID,
		Content:    gofakeit.Paragraph(1, 2, 10, " "),
		Currency:   "USD",
	}
	for _, o := range overrides {
		o(a)
	}
	f.create(a)
	return a
}

func (f *Factory) Transaction(user *model.User, answer *model.Answer, approved bool, overrides ...func(*model.Transaction)) *model.Transaction {
	tx := &model.Transaction{
		UserID:    user.ID,
		AnswerID:  answer.ID,
		Amount:    answer.Price,
		Currency:  answer.Currency,
		Reference: uuid.NewString(),
	}
	if approved {
		now := time.Now()
		tx.ApprovedAt = &now
	}
	for _, o := range overrides {
		o(tx)
	}
	f.create(tx)
	return tx
}

func (f *Factory) Vote(user *model.User, voteableType string, voteableID uint, value int) *model.Vote {
	v := &model.Vote{
		UserID:       user.ID,
		VoteableType: voteableType,
		VoteableID:   voteableID,
		Value:        value,
	}
	f.create(v)
	return v
}

func (f *Factory) Tag(name string) *model.Tag {
	t := &model.Tag{Name: name}
	f.create(t)
	return t
}
