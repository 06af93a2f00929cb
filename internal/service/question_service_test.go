package service

import (
	"testing"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/factory"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/testutil"
	"github.com/dterira/Quorable/internal/upload"
	"gorm.io/gorm"
)

func newQuestionService(t *testing.T) (QuestionService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	svc := NewQuestionService(
		repository.NewQuestionRepository(db),
		upload.NewDiskStorage(t.TempDir()),
		&moderationService{},
		db,
	)
	return svc, db
}

func TestQuestionService_Validation(t *testing.T) {
	svc, _ := newQuestionService(t)

	_, err := svc.Create(1, dto.SaveQuestionRequest{Content: strPtr("no title")}, nil)
	if ae := appErr(t, err); ae.Message != "Title is required." {
		t.Errorf("message = %q", ae.Message)
	}

	_, err = svc.Create(1, dto.SaveQuestionRequest{Title: strPtr("no content")}, nil)
	if ae := appErr(t, err); ae.Message != "Content or description is required." {
		t.Errorf("message = %q", ae.Message)
	}
}

func TestQuestionService_UrgentToggle(t *testing.T) {
	svc, db := newQuestionService(t)
	fac := factory.New(db)
	user := fac.User()
	question := fac.Question(user)

	on := true
	updated, err := svc.Update(user.ID, question.ID, dto.SaveQuestionRequest{Urgent: &on}, nil)
	if err != nil {
		t.Fatalf("flag urgent: %v", err)
	}
	if updated.UrgentAt == nil {
		t.Fatal("urgent_at not set")
	}
	first := *updated.UrgentAt

	updated, err = svc.Update(user.ID, question.ID, dto.SaveQuestionRequest{Urgent: &on}, nil)
	if err != nil {
		t.Fatalf("re-flag: %v", err)
	}
	if updated.UrgentAt == nil || updated.UrgentAt.Unix() != first.Unix() {
		t.Errorf("urgent_at = %v, want preserved %v", updated.UrgentAt, first)
	}

	off := false
	updated, err = svc.Update(user.ID, question.ID, dto.SaveQuestionRequest{Urgent: &off}, nil)
	if err != nil {
		t.Fatalf("unflag: %v", err)
	}
	if updated.UrgentAt != nil {
		t.Errorf("urgent_at = %v, want nil", updated.UrgentAt)
	}
}

func TestQuestionService_RestoreAuthorization(t *testing.T) {
	svc, db := newQuestionService(t)
	fac := factory.New(db)

	owner := fac.User()
	stranger := fac.User()
	moderator := fac.User(func(u *model.User) { u.Roles = model.RoleModerator })
	question := fac.Question(owner)

	if err := svc.Delete(owner.ID, owner.Roles, question.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := svc.Restore(stranger.ID, stranger.Roles, question.ID)
	if ae := appErr(t, err); ae.Status != 403 {
		t.Fatalf("stranger restore status = %d, want 403", ae.Status)
	}
	if _, err := svc.Get(question.ID, nil, nil); err == nil {
		t.Fatal("forbidden restore revived the question")
	}

	if err := svc.Restore(moderator.ID, moderator.Roles, question.ID); err != nil {
		t.Fatalf("moderator restore: %v", err)
	}
	if _, err := svc.Get(question.ID, nil, nil); err != nil {
		t.Errorf("restored question unreadable: %v", err)
	}
}
