package notify

import (
	"context"

	"github.com/m3rciful/healthmode/internal/dialog"
	"github.com/m3rciful/healthmode/internal/journal"
)

// Recorder is the part of *journal.Repository used by JournalSink.
type Recorder interface {
	Insert(ctx context.Context, e journal.Entry) error
}

// JournalSink writes finished intakes to the journal table.
type JournalSink struct {
	repo Recorder
}

func NewJournalSink(repo Recorder) *JournalSink {
	return &JournalSink{repo: repo}
}

func (j *JournalSink) Name() string { return "journal" }

func (j *JournalSink) Deliver(ctx context.Context, rec dialog.IntakeRecord) error {
	return j.repo.Insert(ctx, journal.Entry{
		TelegramUserID: rec.UserID,
		Username:       rec.Username,
		Name:           rec.Name,
		Phone:          rec.Phone,
		Email:          rec.Email,
	})
}
