// Package users persists registered clients and assigns their MaxExpress
// client codes.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/maxexpress/maxbot/core/logger"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("users: not found")

// clientCodeLock serializes code assignment across instances. Arbitrary but
// stable; pg_advisory_xact_lock keys share one namespace per database.
const clientCodeLock = 7340201

// codeBase offsets the sequential part so the first client gets MX200.
const codeBase = 200

// User is a registered client row.
type User struct {
	ID          int64     `db:"id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	PhoneNumber string    `db:"phone_number"`
	TelegramID  int64     `db:"telegram_id"`
	ClientCode  string    `db:"client_code"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewUser carries the fields collected during registration.
type NewUser struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	TelegramID  int64
}

// Repository reads and writes users in Postgres.
type Repository struct {
	db *sqlx.DB
}

// NewRepository binds the repository to a database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the user and assigns the next client code. The code is
// derived from the user count under a transaction-scoped advisory lock, so
// two concurrent registrations cannot observe the same count.
func (r *Repository) Create(ctx context.Context, nu NewUser) (User, error) {
	started := time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return User{}, fmt.Errorf("users: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, clientCodeLock); err != nil {
		return User{}, fmt.Errorf("users: acquire code lock: %w", err)
	}

	var count int64
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return User{}, fmt.Errorf("users: count: %w", err)
	}
	code := ClientCode(count)

	var u User
	err = tx.GetContext(ctx, &u, `
		INSERT INTO users (first_name, last_name, phone_number, telegram_id, client_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, phone_number, telegram_id, client_code, created_at`,
		nu.FirstName, nu.LastName, nu.PhoneNumber, nu.TelegramID, code,
	)
	if err != nil {
		return User{}, fmt.Errorf("users: insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("users: commit: %w", err)
	}

	logger.Info(ctx, "service.users", "user.created",
		slog.String("client_code", u.ClientCode),
		slog.Duration("took", logger.Took(started)),
	)
	return u, nil
}

// ByTelegramID looks a user up by Telegram identity.
func (r *Repository) ByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, first_name, last_name, phone_number, telegram_id, client_code, created_at
		FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users: select by telegram id: %w", err)
	}
	return u, nil
}

// Exists reports whether a user with this Telegram identity is registered.
func (r *Repository) Exists(ctx context.Context, telegramID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE telegram_id = $1)`, telegramID)
	if err != nil {
		return false, fmt.Errorf("users: exists: %w", err)
	}
	return exists, nil
}

// ClientCode formats the code assigned to a client registering while
// existing clients already hold a record. The first client gets MX200.
func ClientCode(existing int64) string {
	return fmt.Sprintf("MX%d", codeBase+existing)
}
