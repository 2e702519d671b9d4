// Package budget implements the transaction rules of a user's budget:
// categorising expenses on the way in and building monthly reports from a
// fresh per-request snapshot of the persisted ledger.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/categorize"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

type Repo interface {
	// ListTransactions returns a user's transactions in insertion order.
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error)
}

type Writer interface {
	InsertTransaction(ctx context.Context, userID uuid.UUID, txn ledger.Transaction) (ledger.Transaction, error)
	ClearTransactions(ctx context.Context, userID uuid.UUID) error
}

// Publisher announces recorded transactions. Failures never undo a write.
type Publisher interface {
	PublishTransaction(ctx context.Context, userID uuid.UUID, txn ledger.Transaction) error
}

// Input describes a transaction to record.
type Input struct {
	Kind        ledger.Kind
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

type Service interface {
	ValidateInput(in Input) error
	Record(ctx context.Context, userID uuid.UUID, in Input) (ledger.Transaction, error)
	AddIncome(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (ledger.Transaction, error)
	AddExpense(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (ledger.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, period *ledger.Period) ([]ledger.Transaction, error)
	Snapshot(ctx context.Context, userID uuid.UUID) (*ledger.Store, error)
	Report(ctx context.Context, userID uuid.UUID, p ledger.Period) (ledger.Report, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Categorize(ctx context.Context, description string) string
}

type service struct {
	repo        Repo
	writer      Writer
	categorizer *categorize.Categorizer
	publisher   Publisher
	logger      *slog.Logger
}

// Option customises the service.
type Option func(*service)

// WithPublisher publishes every recorded transaction through p.
func WithPublisher(p Publisher) Option { return func(s *service) { s.publisher = p } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(repo Repo, writer Writer, c *categorize.Categorizer, opts ...Option) Service {
	if c == nil {
		c = categorize.New()
	}
	s := &service{repo: repo, writer: writer, categorizer: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ValidateInput(in Input) error {
	if !in.Kind.Valid() {
		return fmt.Errorf("kind must be income or expense: %w", errs.ErrInvalid)
	}
	if in.Amount.IsNeg() {
		return fmt.Errorf("amount must not be negative: %w", errs.ErrInvalid)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description is required: %w", errs.ErrInvalid)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("date is required: %w", errs.ErrInvalid)
	}
	return nil
}

// Record validates in, assigns the category and persists the transaction.
func (s *service) Record(ctx context.Context, userID uuid.UUID, in Input) (ledger.Transaction, error) {
	if userID == uuid.Nil {
		return ledger.Transaction{}, fmt.Errorf("user_id is required: %w", errs.ErrInvalid)
	}
	if err := s.ValidateInput(in); err != nil {
		return ledger.Transaction{}, err
	}
	desc := strings.TrimSpace(in.Description)
	var txn ledger.Transaction
	switch in.Kind {
	case ledger.KindIncome:
		txn = ledger.NewIncome(in.Amount, desc, in.Date)
	default:
		txn = ledger.NewExpense(in.Amount, desc, in.Date, s.categorizer.Categorize(ctx, desc))
	}
	saved, err := s.writer.InsertTransaction(ctx, userID, txn)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	transactionsRecorded.WithLabelValues(string(saved.Kind)).Inc()
	if s.publisher != nil {
		if err := s.publisher.PublishTransaction(ctx, userID, saved); err != nil {
			s.logger.Warn("publish transaction failed", "err", err, "txn_id", saved.ID.String())
		}
	}
	return saved, nil
}

func (s *service) AddIncome(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (ledger.Transaction, error) {
	return s.Record(ctx, userID, Input{Kind: ledger.KindIncome, Amount: amount, Description: description, Date: date})
}

func (s *service) AddExpense(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (ledger.Transaction, error) {
	return s.Record(ctx, userID, Input{Kind: ledger.KindExpense, Amount: amount, Description: description, Date: date})
}

// List returns the user's transactions, restricted to period when non-nil.
func (s *service) List(ctx context.Context, userID uuid.UUID, period *ledger.Period) ([]ledger.Transaction, error) {
	if period != nil {
		if err := period.Validate(); err != nil {
			return nil, err
		}
	}
	all, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if period == nil {
		return all, nil
	}
	out := make([]ledger.Transaction, 0, len(all))
	for _, t := range all {
		if period.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Snapshot loads the user's persisted transactions into a private store.
func (s *service) Snapshot(ctx context.Context, userID uuid.UUID) (*ledger.Store, error) {
	all, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return ledger.NewStore(all...), nil
}

func (s *service) Report(ctx context.Context, userID uuid.UUID, p ledger.Period) (ledger.Report, error) {
	if err := p.Validate(); err != nil {
		return ledger.Report{}, err
	}
	store, err := s.Snapshot(ctx, userID)
	if err != nil {
		return ledger.Report{}, err
	}
	start := time.Now()
	r, err := store.Report(p)
	reportDuration.Observe(time.Since(start).Seconds())
	return r, err
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.writer.ClearTransactions(ctx, userID)
}

func (s *service) Categorize(ctx context.Context, description string) string {
	return s.categorizer.Categorize(ctx, description)
}
