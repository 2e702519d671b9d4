package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/smartbudget/internal/currency"
	"github.com/tinoosan/smartbudget/internal/ledger"
	"github.com/tinoosan/smartbudget/internal/service/budget"
)

type ctxKey string

const (
	ctxKeyRegister         ctxKey = "validatedRegister"
	ctxKeyLogin            ctxKey = "validatedLogin"
	ctxKeyPostTransaction  ctxKey = "validatedPostTransaction"
	ctxKeyListTransactions ctxKey = "validatedListTransactions"
	ctxKeyReport           ctxKey = "validatedReport"
)

// validateRegister decodes POST /v1/users and stores the request in the context.
func (s *Server) validateRegister() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req registerRequest
			if err := decodeJSON(r, &req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
				badRequest(w, "name, email and password are required")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyRegister, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateLogin decodes POST /v1/sessions.
func (s *Server) validateLogin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req loginRequest
			if err := decodeJSON(r, &req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if strings.TrimSpace(req.Email) == "" || req.Password == "" {
				badRequest(w, "email and password are required")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyLogin, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePostTransaction parses amount and date, checks the amount fits the
// currency's minor units and runs the service validation before the handler.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req postTransactionRequest
			if err := decodeJSON(r, &req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			amount, err := decimal.Parse(strings.TrimSpace(req.Amount))
			if err != nil {
				writeErr(w, http.StatusUnprocessableEntity, "amount must be a decimal string", "invalid_amount")
				return
			}
			if err := currency.CheckMinorUnits(s.currency, amount); err != nil {
				writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_amount")
				return
			}
			date := ledger.CalendarDate(time.Now())
			if req.Date != "" {
				if date, err = ledger.ParseDate(req.Date); err != nil {
					writeErr(w, http.StatusUnprocessableEntity, "date must be YYYY-MM-DD", "invalid_date")
					return
				}
			}
			in := budget.Input{Kind: ledger.Kind(strings.ToLower(string(req.Kind))), Amount: amount, Description: req.Description, Date: date}
			if err := s.budget.ValidateInput(in); err != nil {
				s.writeServiceErr(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parsePeriodParam reads ?period=YYYY-MM; ok is false (and a 400 written) on bad input.
func parsePeriodParam(w http.ResponseWriter, r *http.Request) (p *ledger.Period, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("period"))
	if raw == "" {
		return nil, true
	}
	parsed, err := ledger.ParsePeriod(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "period must be YYYY-MM with month 01-12", "invalid_period")
		return nil, false
	}
	return &parsed, true
}

// validateListTransactions parses ?period= and ?order=.
func (s *Server) validateListTransactions() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := parsePeriodParam(w, r)
			if !ok {
				return
			}
			q := listTransactionsQuery{Period: p}
			switch strings.ToLower(r.URL.Query().Get("order")) {
			case "", "asc":
			case "desc":
				q.Desc = true
			default:
				badRequest(w, "order must be asc or desc")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyListTransactions, q)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateReport parses ?period=, defaulting to the current month.
func (s *Server) validateReport() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := parsePeriodParam(w, r)
			if !ok {
				return
			}
			period := ledger.PeriodOf(time.Now())
			if p != nil {
				period = *p
			}
			ctx := context.WithValue(r.Context(), ctxKeyReport, period)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
