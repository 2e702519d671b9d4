package httpapi

import chi "github.com/go-chi/chi/v5"

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Users and sessions
	s.rt.With(s.validateRegister()).Post("/v1/users", s.postUser)
	s.rt.With(s.validateLogin()).Post("/v1/sessions", s.postSession)

	// Authenticated
	s.rt.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/v1/me", s.getMe)
		r.With(s.validatePostTransaction()).Post("/v1/transactions", s.postTransaction)
		r.With(s.validateListTransactions()).Get("/v1/transactions", s.listTransactions)
		r.With(s.validateReport()).Get("/v1/reports/monthly", s.getMonthlyReport)
	})

	// Dictionary (public)
	s.rt.Get("/v1/dictionary/categories", s.getCategoriesDictionary)

	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
