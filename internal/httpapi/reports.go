package httpapi

import (
	"net/http"

	"github.com/tinoosan/smartbudget/internal/ledger"
)

// GET /v1/reports/monthly?period=YYYY-MM
func (s *Server) getMonthlyReport(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ctxKeyReport).(ledger.Period)
	rep, err := s.budget.Report(r.Context(), userIDFrom(r.Context()), p)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toReportResponse(s.currency, rep))
}
