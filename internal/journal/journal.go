// Package journal persists finished intakes to Postgres. It is used only when
// the database is enabled; otherwise intakes live only in the admin notification.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/healthmode/core/logger"
)

// Entry is one row of intake_records.
type Entry struct {
	ID             uuid.UUID `db:"id"`
	TelegramUserID int64     `db:"telegram_user_id"`
	Username       string    `db:"username"`
	Name           string    `db:"name"`
	Phone          string    `db:"phone"`
	Email          string    `db:"email"`
	CreatedAt      time.Time `db:"created_at"`
}

const (
	insertEntry = `INSERT INTO intake_records (id, telegram_user_id, username, name, phone, email, created_at)
VALUES (:id, :telegram_user_id, :username, :name, :phone, :email, :created_at)`
	countSince = `SELECT COUNT(*) FROM intake_records WHERE created_at >= $1`
)

// Repository reads and writes intake_records.
type Repository struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() uuid.UUID
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now, newID: uuid.New}
}

// Insert stores e, assigning an id and creation time when they are zero.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = r.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now().UTC()
	}
	start := time.Now()
	if _, err := r.db.NamedExecContext(ctx, insertEntry, e); err != nil {
		return fmt.Errorf("journal: insert intake: %w", err)
	}
	logger.LogEvent(ctx, logger.Journal, slog.LevelDebug, "journal.insert",
		slog.String("status", "ok"),
		slog.String("record_id", e.ID.String()),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// CountSince returns how many intakes were stored at or after since.
func (r *Repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, countSince, since.UTC()); err != nil {
		return 0, fmt.Errorf("journal: count intakes: %w", err)
	}
	return n, nil
}
