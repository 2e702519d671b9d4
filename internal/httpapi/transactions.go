package httpapi

import (
	"net/http"

	"github.com/tinoosan/smartbudget/internal/service/budget"
)

// POST /v1/transactions
func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	in := r.Context().Value(ctxKeyPostTransaction).(budget.Input)
	txn, err := s.budget.Record(r.Context(), userIDFrom(r.Context()), in)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(s.currency, txn))
}

// GET /v1/transactions?period=YYYY-MM&order=asc|desc
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.Context().Value(ctxKeyListTransactions).(listTransactionsQuery)
	txns, err := s.budget.List(r.Context(), userIDFrom(r.Context()), q.Period)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	items := make([]transactionResponse, 0, len(txns))
	for i := range txns {
		t := txns[i]
		if q.Desc {
			t = txns[len(txns)-1-i]
		}
		items = append(items, toTransactionResponse(s.currency, t))
	}
	toJSON(w, http.StatusOK, struct {
		Items []transactionResponse `json:"items"`
	}{Items: items})
}
