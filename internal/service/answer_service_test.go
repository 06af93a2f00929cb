package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dterira/Quorable/internal/apperr"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/factory"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/testutil"
	"github.com/dterira/Quorable/internal/upload"
	"gorm.io/gorm"
)

func newAnswerService(t *testing.T) (AnswerService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	svc := NewAnswerService(
		repository.NewAnswerRepository(db),
		repository.NewQuestionRepository(db),
		upload.NewDiskStorage(t.TempDir()),
		&moderationService{},
		db,
	)
	return svc, db
}

func strPtr(s string) *string     { return &s }
func uintPtr(u uint) *uint        { return &u }
func floatPtr(f float64) *float64 { return &f }

func appErr(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected an application error, got %v", err)
	}
	return ae
}

func TestAnswerService_Create_MissingQuestion(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	user := f.User()

	_, err := svc.Create(user.ID, dto.SaveAnswerRequest{
		QuestionID: uintPtr(9999),
		Content:    strPtr("an orphan answer"),
	}, nil)

	ae := appErr(t, err)
	if ae.Status != 400 {
		t.Errorf("status = %d, want 400", ae.Status)
	}
	if ae.Message != "Oops! The question was not found." {
		t.Errorf("message = %q", ae.Message)
	}

	var count int64
	db.Model(&model.Answer{}).Count(&count)
	if count != 0 {
		t.Errorf("answers persisted = %d, want 0", count)
	}
}

func TestAnswerService_Create_Validation(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	user := f.User()
	question := f.Question(user)

	cases := []struct {
		name string
		req  dto.SaveAnswerRequest
		want string
	}{
		{
			name: "content required",
			req:  dto.SaveAnswerRequest{QuestionID: uintPtr(question.ID)},
			want: "Content or description is required.",
		},
		{
			name: "price required when privating",
			req: dto.SaveAnswerRequest{
				QuestionID:  uintPtr(question.ID),
				Content:     strPtr("paid insight"),
				Currency:    strPtr("USD"),
				MakePrivate: true,
			},
			want: "Price is required.",
		},
		{
			name: "currency required when privating",
			req: dto.SaveAnswerRequest{
				QuestionID:  uintPtr(question.ID),
				Content:     strPtr("paid insight"),
				Price:       floatPtr(5),
				MakePrivate: true,
			},
			want: "Currency is required.",
		},
		{
			name: "price ceiling",
			req: dto.SaveAnswerRequest{
				QuestionID:  uintPtr(question.ID),
				Content:     strPtr("paid insight"),
				Price:       floatPtr(15),
				Currency:    strPtr("USD"),
				MakePrivate: true,
			},
			want: "Price should not exceed 10.",
		},
		{
			name: "price floor",
			req: dto.SaveAnswerRequest{
				QuestionID: uintPtr(question.ID),
				Content:    strPtr("free insight"),
				Price:      floatPtr(-1),
			},
			want: "Price should be 0 or more.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(user.ID, tc.req, nil)
			ae := appErr(t, err)
			if ae.Status != 422 {
				t.Errorf("status = %d, want 422", ae.Status)
			}
			if ae.Message != tc.want {
				t.Errorf("message = %q, want %q", ae.Message, tc.want)
			}
		})
	}
}

func TestAnswerService_Create_Private(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	user := f.User()
	question := f.Question(user)

	answer, err := svc.Create(user.ID, dto.SaveAnswerRequest{
		QuestionID:  uintPtr(question.ID),
		Content:     strPtr("worth paying for"),
		Price:       floatPtr(3.5),
		Currency:    strPtr("EUR"),
		MakePrivate: true,
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if answer.PrivatedAt == nil {
		t.Error("privated_at not set on private create")
	}
	if answer.Price != 3.5 || answer.Currency != "EUR" {
		t.Errorf("price/currency = %v/%q", answer.Price, answer.Currency)
	}
}

func TestAnswerService_Update_PrivacyToggle(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	user := f.User()
	question := f.Question(user)
	answer := f.Answer(user, question)

	private := dto.SaveAnswerRequest{
		Price:       floatPtr(2),
		Currency:    strPtr("USD"),
		MakePrivate: true,
	}

	updated, err := svc.Update(user.ID, answer.ID, private, nil)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if updated.PrivatedAt == nil {
		t.Fatal("privated_at not set")
	}
	first := *updated.PrivatedAt

	// A second privating update must keep the original moment.
	updated, err = svc.Update(user.ID, answer.ID, private, nil)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if updated.PrivatedAt == nil || updated.PrivatedAt.Unix() != first.Unix() {
		t.Errorf("privated_at = %v, want preserved %v", updated.PrivatedAt, first)
	}

	updated, err = svc.Update(user.ID, answer.ID, dto.SaveAnswerRequest{Price: floatPtr(2)}, nil)
	if err != nil {
		t.Fatalf("clearing toggle: %v", err)
	}
	if updated.PrivatedAt != nil {
		t.Errorf("privated_at = %v, want nil after clearing", updated.PrivatedAt)
	}
}

func TestAnswerService_Update_Forbidden(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	owner := f.User()
	stranger := f.User()
	answer := f.Answer(owner, f.Question(owner))

	_, err := svc.Update(stranger.ID, answer.ID, dto.SaveAnswerRequest{Content: strPtr("hijacked")}, nil)
	if ae := appErr(t, err); ae.Status != 403 {
		t.Errorf("status = %d, want 403", ae.Status)
	}
}

func TestAnswerService_SetBest(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	asker := f.User()
	expert := f.User()
	question := f.Question(asker)
	answer := f.Answer(expert, question)

	t.Run("only the question owner", func(t *testing.T) {
		err := svc.SetBest(expert.ID, answer.ID, true)
		if ae := appErr(t, err); ae.Status != 403 {
			t.Errorf("status = %d, want 403", ae.Status)
		}
	})

	t.Run("marks without touching updated_at", func(t *testing.T) {
		// Backdate the audit timestamp so a generic update would be visible.
		past := time.Now().Add(-time.Hour)
		db.Model(&model.Answer{}).Where("id = ?", answer.ID).
			UpdateColumn("updated_at", past)

		var before model.Answer
		db.First(&before, answer.ID)

		if err := svc.SetBest(asker.ID, answer.ID, true); err != nil {
			t.Fatalf("set best: %v", err)
		}

		var after model.Answer
		db.First(&after, answer.ID)
		if after.IsBestAt == nil {
			t.Fatal("is_best_at not set")
		}
		if after.UpdatedAt.Unix() != before.UpdatedAt.Unix() {
			t.Errorf("updated_at moved from %v to %v", before.UpdatedAt, after.UpdatedAt)
		}
	})

	t.Run("clears", func(t *testing.T) {
		if err := svc.SetBest(asker.ID, answer.ID, false); err != nil {
			t.Fatalf("clear best: %v", err)
		}
		var after model.Answer
		db.First(&after, answer.ID)
		if after.IsBestAt != nil {
			t.Errorf("is_best_at = %v, want nil", after.IsBestAt)
		}
	})
}

func TestAnswerService_DeleteRestore(t *testing.T) {
	svc, db := newAnswerService(t)
	f := factory.New(db)
	owner := f.User()
	moderator := f.User(func(u *model.User) { u.Roles = model.RoleModerator })
	stranger := f.User()
	answer := f.Answer(owner, f.Question(owner))

	if err := svc.Delete(stranger.ID, stranger.Roles, answer.ID); err == nil {
		t.Fatal("stranger delete succeeded")
	}

	if err := svc.Delete(owner.ID, owner.Roles, answer.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(answer.ID, nil, nil); err == nil {
		t.Error("deleted answer still readable")
	}

	// Restore is owner-or-moderator, same as delete.
	err := svc.Restore(stranger.ID, stranger.Roles, answer.ID)
	if ae := appErr(t, err); ae.Status != 403 {
		t.Fatalf("stranger restore status = %d, want 403", ae.Status)
	}
	if _, err := svc.Get(answer.ID, nil, nil); err == nil {
		t.Fatal("forbidden restore revived the answer")
	}

	if err := svc.Restore(owner.ID, owner.Roles, answer.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, err := svc.Get(answer.ID, nil, nil); err != nil {
		t.Errorf("restored answer unreadable: %v", err)
	}

	// Moderators may delete and restore answers they do not own.
	if err := svc.Delete(moderator.ID, moderator.Roles, answer.ID); err != nil {
		t.Errorf("moderator delete: %v", err)
	}
	if err := svc.Restore(moderator.ID, moderator.Roles, answer.ID); err != nil {
		t.Errorf("moderator restore: %v", err)
	}
}
