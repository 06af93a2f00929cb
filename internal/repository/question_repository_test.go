package repository

import (
	"testing"

	"github.com/dterira/Quorable/internal/factory"
	"github.com/dterira/Quorable/internal/testutil"
)

func TestQuestionRepository_FeedAnswersCount(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewQuestionRepository(db)
	fac := factory.New(db)

	user := fac.User()
	question := fac.Question(user)
	fac.Answer(user, question)
	fac.Answer(user, question)
	deleted := fac.Answer(user, question)
	db.Delete(deleted)

	questions, err := repo.Feed(user.ID, FeedOptions{WithCount: []string{"answers"}})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].AnswersCount == nil || *questions[0].AnswersCount != 2 {
		t.Errorf("answers_count = %v, want 2 (tombstoned excluded)", questions[0].AnswersCount)
	}
}

func TestQuestionRepository_FeedScopedTransactions(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewQuestionRepository(db)
	fac := factory.New(db)

	asker := fac.User()
	viewer := fac.User()
	other := fac.User()
	question := fac.Question(asker)
	answer := fac.Answer(asker, question)

	mine := fac.Transaction(viewer, answer, true)
	fac.Transaction(viewer, answer, false) // pending, must not be loaded
	fac.Transaction(other, answer, true)   // another user's, must not be loaded

	t.Run("viewer present", func(t *testing.T) {
		questions, err := repo.Feed(asker.ID, FeedOptions{
			With:     []string{"answers"},
			ViewerID: &viewer.ID,
		})
		if err != nil {
			t.Fatalf("feed: %v", err)
		}
		if len(questions) != 1 || len(questions[0].Answers) != 1 {
			t.Fatalf("feed shape: %d questions", len(questions))
		}
		txs := questions[0].Answers[0].Transactions
		if len(txs) != 1 {
			t.Fatalf("loaded %d transactions, want only the viewer's approved one", len(txs))
		}
		if txs[0].ID != mine.ID {
			t.Errorf("loaded transaction %d, want %d", txs[0].ID, mine.ID)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		questions, err := repo.Feed(asker.ID, FeedOptions{With: []string{"answers"}})
		if err != nil {
			t.Fatalf("feed: %v", err)
		}
		if txs := questions[0].Answers[0].Transactions; txs != nil {
			t.Errorf("transactions loaded for anonymous feed: %v", txs)
		}
	})
}

func TestQuestionRepository_SyncTags(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewQuestionRepository(db)
	fac := factory.New(db)

	user := fac.User()
	question := fac.Question(user)
	golang := fac.Tag("golang")
	databases := fac.Tag("databases")
	web := fac.Tag("web")

	if err := repo.SyncTags(db, question, []uint{golang.ID, databases.ID}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Replacing the set drops tags no longer listed.
	if err := repo.SyncTags(db, question, []uint{web.ID}); err != nil {
		t.Fatalf("resync: %v", err)
	}

	got, err := repo.FindByIDWith(question.ID, []string{"tags"}, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "web" {
		t.Errorf("tags = %v, want just web", got.Tags)
	}
}
