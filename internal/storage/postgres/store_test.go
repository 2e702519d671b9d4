package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `truncate table transactions, users cascade`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return s
}

func TestStore_UsersAndTransactions(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	u := ledger.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if _, err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	dup := u
	dup.ID = uuid.New()
	if _, err := s.CreateUser(ctx, dup); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, err := s.UserByEmail(ctx, u.Email)
	if err != nil || got.ID != u.ID {
		t.Fatalf("user by email: %v %+v", err, got)
	}
	if _, err := s.UserByID(ctx, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	in := []ledger.Transaction{
		ledger.NewIncome(decimal.MustParse("4500.00"), "Salary", date),
		ledger.NewExpense(decimal.MustParse("89.90"), "streaming subscription", date, "Subscriptions"),
		ledger.NewExpense(decimal.MustParse("120"), "Uber to work", date.AddDate(0, 0, 1), "Transportation"),
	}
	for _, txn := range in {
		if _, err := s.InsertTransaction(ctx, u.ID, txn); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	list, err := s.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(in) {
		t.Fatalf("expected %d transactions, got %d", len(in), len(list))
	}
	for i := range in {
		if list[i].ID != in[i].ID || list[i].Amount.String() != in[i].Amount.String() || !list[i].Date.Equal(in[i].Date) {
			t.Fatalf("round trip %d: got %+v want %+v", i, list[i], in[i])
		}
	}
	if err := s.ClearTransactions(ctx, u.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if list, _ := s.ListTransactions(ctx, u.ID); len(list) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(list))
	}
}
