// Package resource shapes loaded entities into response payloads. Output is
// key/value maps rather than fixed structs because the contract
// distinguishes absent keys (relation not requested, anonymous viewer) from
// keys present with null (viewer has cast no vote).
package resource

import (
	"time"

	"github.com/dterira/Quorable/internal/repository"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Formatter struct {
	votes        repository.VoteRepository
	transactions repository.TransactionRepository
}

func NewFormatter(votes repository.VoteRepository, transactions repository.TransactionRepository) *Formatter {
	return &Formatter{votes: votes, transactions: transactions}
}

// Options carries the viewer-dependent formatting inputs. A nil ViewerID is
// an anonymous request: no vote lookup, no visibility verdict.
type Options struct {
	ViewerID *uint

	// WithViewable is set when the caller requested the
	// transactions-viewable relation; only then is a verdict attached.
	WithViewable bool
}

// humanizeDates writes each timestamp twice: the machine-parsable original
// under its own key and a relative rendering under "<key>_human". Nil
// timestamps keep the key with an explicit null and get no human twin.
func humanizeDates(res gin.H, fields map[string]*time.Time) {
	for key, t := range fields {
		if t == nil {
			res[key] = nil
			continue
		}
		res[key] = t.Format(time.RFC3339)
		res[key+"_human"] = humanize.Time(*t)
	}
}

// tombstone converts a gorm soft-delete column to the nullable timestamp
// the date formatting works with.
func tombstone(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
