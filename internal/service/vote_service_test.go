package service

import (
	"testing"

	"github.com/dterira/Quorable/internal/factory"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/testutil"
)

func TestVoteService_Cast(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewVoteService(repository.NewVoteRepository(db), db)
	fac := factory.New(db)

	user := fac.User()
	voter := fac.User()
	answer := fac.Answer(user, fac.Question(user))

	t.Run("unknown target kind", func(t *testing.T) {
		_, err := svc.Cast(voter.ID, "comments", 1, 1)
		if ae := appErr(t, err); ae.Message != "Unable to vote on that." {
			t.Errorf("message = %q", ae.Message)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := svc.Cast(voter.ID, model.VoteableAnswer, answer.ID, 2)
		if ae := appErr(t, err); ae.Message != "Vote value should be 1 or -1." {
			t.Errorf("message = %q", ae.Message)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := svc.Cast(voter.ID, model.VoteableAnswer, 9999, 1)
		if ae := appErr(t, err); ae.Status != 404 {
			t.Errorf("status = %d, want 404", ae.Status)
		}
	})

	t.Run("upvote then flip", func(t *testing.T) {
		vote, err := svc.Cast(voter.ID, model.VoteableAnswer, answer.ID, 1)
		if err != nil {
			t.Fatalf("cast: %v", err)
		}
		if vote.Value != 1 {
			t.Errorf("value = %d, want 1", vote.Value)
		}

		flipped, err := svc.Cast(voter.ID, model.VoteableAnswer, answer.ID, -1)
		if err != nil {
			t.Fatalf("flip: %v", err)
		}
		if flipped.ID != vote.ID {
			t.Errorf("flip created a second row (%d vs %d)", flipped.ID, vote.ID)
		}

		total, err := svc.Total(model.VoteableAnswer, answer.ID)
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if total != -1 {
			t.Errorf("total = %d, want -1", total)
		}
	})

	t.Run("zero clears and revote revives", func(t *testing.T) {
		if _, err := svc.Cast(voter.ID, model.VoteableAnswer, answer.ID, 0); err != nil {
			t.Fatalf("clear: %v", err)
		}
		total, _ := svc.Total(model.VoteableAnswer, answer.ID)
		if total != 0 {
			t.Errorf("total = %d, want 0 after clearing", total)
		}

		revived, err := svc.Cast(voter.ID, model.VoteableAnswer, answer.ID, 1)
		if err != nil {
			t.Fatalf("revote: %v", err)
		}
		if revived == nil {
			t.Fatal("revote returned no vote")
		}
		total, _ = svc.Total(model.VoteableAnswer, answer.ID)
		if total != 1 {
			t.Errorf("total = %d, want 1 after revival", total)
		}
	})
}
