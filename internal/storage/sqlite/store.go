// Package sqlite persists users and transactions in a local SQLite file.
// Amounts are stored as exact decimal text and dates as ISO calendar dates.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"

	_ "modernc.org/sqlite"
)

// Store implements the service repositories on SQLite. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory, migrates the schema and opens the database.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	if err := RunMigrations(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ready pings the database.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u ledger.User) (ledger.User, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID.String(), u.Name, u.Email, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ledger.User{}, errs.ErrConflict
		}
		return ledger.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (ledger.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (ledger.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id.String()))
}

func (s *Store) scanUser(row *sql.Row) (ledger.User, error) {
	var u ledger.User
	var id, created string
	if err := row.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.User{}, errs.ErrNotFound
		}
		return ledger.User{}, fmt.Errorf("scan user: %w", err)
	}
	var err error
	if u.ID, err = uuid.Parse(id); err != nil {
		return ledger.User{}, fmt.Errorf("user id %q: %w", id, err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return ledger.User{}, fmt.Errorf("user created_at %q: %w", created, err)
	}
	return u, nil
}

// --- Transactions ---

func (s *Store) InsertTransaction(ctx context.Context, userID uuid.UUID, txn ledger.Transaction) (ledger.Transaction, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount, description, date, category, kind)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID.String(), userID.String(), txn.Amount.String(), txn.Description,
		txn.Date.Format(time.DateOnly), txn.Category, string(txn.Kind))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, description, date, category, kind
		FROM transactions
		WHERE user_id = ?
		ORDER BY seq`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		var id, amount, date, kind string
		var t ledger.Transaction
		if err := rows.Scan(&id, &amount, &t.Description, &date, &t.Category, &kind); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("transaction id %q: %w", id, err)
		}
		if t.Amount, err = decimal.Parse(amount); err != nil {
			return nil, fmt.Errorf("transaction %s amount %q: %w", id, amount, err)
		}
		if t.Date, err = ledger.ParseDate(date); err != nil {
			return nil, fmt.Errorf("transaction %s date %q: %w", id, date, err)
		}
		t.Kind = ledger.Kind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ClearTransactions(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}
