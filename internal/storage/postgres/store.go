package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// Amounts live in numeric columns and are read back as text so no precision
// is lost; dates are plain SQL dates.

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

//go:embed schema.sql
var schemaSQL string

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Migrate creates the schema when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u ledger.User) (ledger.User, error) {
	_, err := s.pool.Exec(ctx, `
		insert into users (id, name, email, password_hash, created_at)
		values ($1, $2, $3, $4, $5)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ledger.User{}, errs.ErrConflict
		}
		return ledger.User{}, err
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (ledger.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `
		select id, name, email, password_hash, created_at from users where email = $1
	`, email))
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (ledger.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `
		select id, name, email, password_hash, created_at from users where id = $1
	`, id))
}

func scanUser(row pgx.Row) (ledger.User, error) {
	var u ledger.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.User{}, errs.ErrNotFound
		}
		return ledger.User{}, err
	}
	return u, nil
}

// --- Transactions ---

func (s *Store) InsertTransaction(ctx context.Context, userID uuid.UUID, txn ledger.Transaction) (ledger.Transaction, error) {
	_, err := s.pool.Exec(ctx, `
		insert into transactions (id, user_id, amount, description, date, category, kind)
		values ($1, $2, $3::numeric, $4, $5::date, $6, $7)
	`, txn.ID, userID, txn.Amount.String(), txn.Description, txn.Date.Format(time.DateOnly), txn.Category, string(txn.Kind))
	if err != nil {
		return ledger.Transaction{}, err
	}
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		select id, amount::text, description, to_char(date, 'YYYY-MM-DD'), category, kind
		from transactions
		where user_id = $1
		order by seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		var t ledger.Transaction
		var amount, date, kind string
		if err := rows.Scan(&t.ID, &amount, &t.Description, &date, &t.Category, &kind); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.Parse(amount); err != nil {
			return nil, fmt.Errorf("transaction %s amount %q: %w", t.ID, amount, err)
		}
		if t.Date, err = ledger.ParseDate(date); err != nil {
			return nil, fmt.Errorf("transaction %s date %q: %w", t.ID, date, err)
		}
		t.Kind = ledger.Kind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ClearTransactions(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `delete from transactions where user_id = $1`, userID)
	return err
}
