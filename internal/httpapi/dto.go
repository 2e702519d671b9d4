package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/smartbudget/internal/currency"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type postTransactionRequest struct {
	Kind        ledger.Kind `json:"kind"`
	Amount      string      `json:"amount"`
	Description string      `json:"description"`
	// Date is YYYY-MM-DD; empty means today.
	Date string `json:"date"`
}

type transactionResponse struct {
	ID          uuid.UUID   `json:"id"`
	Kind        ledger.Kind `json:"kind"`
	Amount      string      `json:"amount"`
	Formatted   string      `json:"formatted_amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
}

type listTransactionsQuery struct {
	Period *ledger.Period
	Desc   bool
}

type summaryResponse struct {
	TotalIncome           string `json:"total_income"`
	TotalExpense          string `json:"total_expense"`
	Balance               string `json:"balance"`
	FormattedTotalIncome  string `json:"formatted_total_income"`
	FormattedTotalExpense string `json:"formatted_total_expense"`
	FormattedBalance      string `json:"formatted_balance"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type sliceResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
	StartAngle string `json:"start_angle"`
	EndAngle   string `json:"end_angle"`
	ColorIndex int    `json:"color_index"`
	Color      string `json:"color"`
	Empty      bool   `json:"empty,omitempty"`
}

type reportResponse struct {
	Period       string                  `json:"period"`
	Currency     string                  `json:"currency"`
	Summary      summaryResponse         `json:"summary"`
	TopCategory  string                  `json:"top_category"`
	ExpenseRatio *string                 `json:"expense_ratio,omitempty"`
	Status       string                  `json:"status,omitempty"`
	Insight      string                  `json:"insight"`
	Totals       []categoryTotalResponse `json:"totals"`
	Slices       []sliceResponse         `json:"slices"`
}

type categoryDefResponse struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	// Curated is false for rules that came from configuration.
	Curated bool `json:"curated"`
}

func toUserResponse(u ledger.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toTransactionResponse(cur string, t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Kind:        t.Kind,
		Amount:      t.Amount.String(),
		Formatted:   currency.Format(cur, t.Amount),
		Description: t.Description,
		Date:        t.Date.Format(time.DateOnly),
		Category:    t.Category,
	}
}

func toReportResponse(cur string, r ledger.Report) reportResponse {
	out := reportResponse{
		Period:   r.Period.String(),
		Currency: cur,
		Summary: summaryResponse{
			TotalIncome:           r.Summary.TotalIncome.String(),
			TotalExpense:          r.Summary.TotalExpense.String(),
			Balance:               r.Balance.String(),
			FormattedTotalIncome:  currency.Format(cur, r.Summary.TotalIncome),
			FormattedTotalExpense: currency.Format(cur, r.Summary.TotalExpense),
			FormattedBalance:      currency.Format(cur, r.Balance),
		},
		TopCategory: r.TopCategory,
		Status:      string(r.Status),
		Insight:     r.Insight,
		Totals:      make([]categoryTotalResponse, 0, len(r.Totals)),
		Slices:      make([]sliceResponse, 0, len(r.Slices)),
	}
	if r.HasRatio {
		ratio := r.ExpenseRatio.String()
		out.ExpenseRatio = &ratio
	}
	for _, t := range r.Totals {
		out.Totals = append(out.Totals, categoryTotalResponse{Category: t.Category, Amount: t.Amount.String()})
	}
	for _, sl := range r.Slices {
		out.Slices = append(out.Slices, sliceResponse{
			Category:   sl.Category,
			Amount:     sl.Amount.String(),
			Percentage: sl.Percentage.String(),
			StartAngle: sl.StartAngle.String(),
			EndAngle:   sl.EndAngle.String(),
			ColorIndex: sl.ColorIndex,
			Color:      sl.Color,
			Empty:      sl.Empty,
		})
	}
	return out
}
