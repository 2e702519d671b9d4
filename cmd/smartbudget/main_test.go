package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinoosan/smartbudget/internal/categorize"
	"github.com/tinoosan/smartbudget/internal/ledger"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
	"github.com/tinoosan/smartbudget/internal/storage/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SMARTBUDGET_LOG_LEVEL", "error")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "smartbudget", root.Use)
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "demo", "report", "categorize"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestDemo(t *testing.T) {
	t.Setenv("SMARTBUDGET_STORAGE_BACKEND", "memory")
	out, err := run(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "BRL 4500.00")
	assert.Contains(t, out, "BRL 559.90")
	assert.Contains(t, out, "BRL 3940.10")
	assert.Contains(t, out, "Top category: Food")
	assert.Contains(t, out, "225.04")
	assert.Contains(t, out, "You are in a healthy situation: expenses at 12.4% of your income this month.")
}

func TestCategorize(t *testing.T) {
	out, err := run(t, "categorize", "UBER", "trip", "downtown")
	require.NoError(t, err)
	assert.Equal(t, "Transportation", strings.TrimSpace(out))

	out, err = run(t, "categorize", "mystery purchase")
	require.NoError(t, err)
	assert.Equal(t, "Other", strings.TrimSpace(out))
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("SMARTBUDGET_STORAGE_BACKEND", "mongo")
	_, err := run(t, "categorize", "uber")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestReportFromSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "smartbudget.db")
	st, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	u, err := user.NewWithCost(st, st, bcrypt.MinCost).Register(ctx, "Ana", "ana@example.com", "s3cret")
	require.NoError(t, err)
	svc := budget.New(st, st, categorize.New())
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, in := range []budget.Input{
		{Kind: ledger.KindIncome, Amount: decimal.MustParse("1000.00"), Description: "Salary", Date: date},
		{Kind: ledger.KindExpense, Amount: decimal.MustParse("950.00"), Description: "rent", Date: date},
	} {
		_, err := svc.Record(ctx, u.ID, in)
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())

	t.Setenv("SMARTBUDGET_STORAGE_BACKEND", "sqlite")
	t.Setenv("SMARTBUDGET_STORAGE_SQLITE_PATH", path)
	out, err := run(t, "report", "--email", "ANA@example.com", "--period", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:      BRL 50.00")
	assert.Contains(t, out, "Top category: Housing")
	assert.Contains(t, out, "maximum attention")

	_, err = run(t, "report", "--email", "bob@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user")

	_, err = run(t, "report", "--email", "ana@example.com", "--period", "2025-13")
	require.Error(t, err)
}
