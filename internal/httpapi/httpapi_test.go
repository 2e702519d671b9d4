package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/smartbudget/internal/categorize"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
	"github.com/tinoosan/smartbudget/internal/storage/memory"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type failingReady struct{}

func (failingReady) Ready(context.Context) error { return errors.New("down") }

func setup(t *testing.T, ready ...ReadyChecker) (*memory.Store, http.Handler) {
	t.Helper()
	return setupWithLogger(t, testLogger(), ready...)
}

func setupWithLogger(t *testing.T, logger *slog.Logger, ready ...ReadyChecker) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.New()
	cat := categorize.New(categorize.WithLogger(testLogger()))
	users := user.NewWithCost(store, store, bcrypt.MinCost)
	svc := budget.New(store, store, cat, budget.WithLogger(testLogger()))
	cfg := Config{Secret: "test-secret", Issuer: "smartbudget", TokenTTL: time.Hour, Currency: "BRL"}
	return store, New(users, svc, cat, cfg, logger, ready...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/v1/users", "", map[string]string{"name": "Ana", "email": email, "password": "s3cret"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	rr = do(t, h, http.MethodPost, "/v1/sessions", "", map[string]string{"email": email, "password": "s3cret"})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var sess sessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.Token == "" || sess.User.Email != email {
		t.Fatalf("unexpected session: %+v", sess)
	}
	return sess.Token
}

func TestEndToEnd_MonthlyReport(t *testing.T) {
	_, h := setup(t)
	tok := login(t, h, "ana@example.com")

	posts := []map[string]string{
		{"kind": "income", "amount": "4500.00", "description": "Salary", "date": "2025-03-05"},
		{"kind": "expense", "amount": "120.00", "description": "Uber to work", "date": "2025-03-06"},
		{"kind": "expense", "amount": "350.00", "description": "grocery store month", "date": "2025-03-07"},
		{"kind": "expense", "amount": "89.90", "description": "streaming subscription", "date": "2025-03-08"},
		{"kind": "expense", "amount": "999.99", "description": "rent", "date": "2025-04-01"},
	}
	wantCats := []string{"Income", "Transportation", "Food", "Subscriptions", "Housing"}
	for i, p := range posts {
		rr := do(t, h, http.MethodPost, "/v1/transactions", tok, p)
		if rr.Code != http.StatusCreated {
			t.Fatalf("post %d: expected 201, got %d: %s", i, rr.Code, rr.Body.String())
		}
		var got transactionResponse
		_ = json.NewDecoder(rr.Body).Decode(&got)
		if got.Category != wantCats[i] {
			t.Fatalf("post %d: category %q, want %q", i, got.Category, wantCats[i])
		}
	}

	rr := do(t, h, http.MethodGet, "/v1/reports/monthly?period=2025-03", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var rep reportResponse
	if err := json.NewDecoder(rr.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Summary.TotalIncome != "4500.00" || rep.Summary.TotalExpense != "559.90" || rep.Summary.Balance != "3940.10" {
		t.Fatalf("unexpected summary: %+v", rep.Summary)
	}
	if !strings.Contains(rep.Summary.FormattedBalance, "3940.10") {
		t.Fatalf("formatted balance %q", rep.Summary.FormattedBalance)
	}
	if rep.TopCategory != "Food" || rep.Status != "healthy situation" {
		t.Fatalf("top=%q status=%q", rep.TopCategory, rep.Status)
	}
	if rep.ExpenseRatio == nil || *rep.ExpenseRatio != "12.4" {
		t.Fatalf("expense ratio %v", rep.ExpenseRatio)
	}
	if len(rep.Slices) != 3 || rep.Slices[0].Category != "Food" || rep.Slices[2].EndAngle != "360.00" {
		t.Fatalf("unexpected slices: %+v", rep.Slices)
	}
	if len(rep.Totals) != 3 || rep.Totals[0].Category != "Food" {
		t.Fatalf("totals should be alphabetical: %+v", rep.Totals)
	}
}

func TestListTransactions_PeriodAndOrder(t *testing.T) {
	_, h := setup(t)
	tok := login(t, h, "ana@example.com")
	for _, d := range []string{"2024-12-31", "2025-01-01", "2025-01-15"} {
		rr := do(t, h, http.MethodPost, "/v1/transactions", tok, map[string]string{"kind": "expense", "amount": "10", "description": "bus " + d, "date": d})
		if rr.Code != http.StatusCreated {
			t.Fatalf("post: %d %s", rr.Code, rr.Body.String())
		}
	}
	rr := do(t, h, http.MethodGet, "/v1/transactions?period=2025-01&order=desc", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Items []transactionResponse `json:"items"`
	}
	_ = json.NewDecoder(rr.Body).Decode(&out)
	if len(out.Items) != 2 || out.Items[0].Date != "2025-01-15" || out.Items[1].Date != "2025-01-01" {
		t.Fatalf("unexpected items: %+v", out.Items)
	}

	rr = do(t, h, http.MethodGet, "/v1/transactions?period=2025-13", tok, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad period, got %d", rr.Code)
	}
}

func TestPostTransaction_Validation(t *testing.T) {
	_, h := setup(t)
	tok := login(t, h, "ana@example.com")
	cases := []struct {
		name string
		body map[string]string
		code string
	}{
		{"amount", map[string]string{"kind": "expense", "amount": "abc", "description": "x"}, "invalid_amount"},
		{"precision", map[string]string{"kind": "expense", "amount": "1.005", "description": "x"}, "invalid_amount"},
		{"negative", map[string]string{"kind": "expense", "amount": "-1", "description": "x"}, "validation_error"},
		{"kind", map[string]string{"kind": "transfer", "amount": "1", "description": "x"}, "validation_error"},
		{"description", map[string]string{"kind": "expense", "amount": "1", "description": " "}, "validation_error"},
		{"date", map[string]string{"kind": "expense", "amount": "1", "description": "x", "date": "05/03/2025"}, "invalid_date"},
	}
	for _, tc := range cases {
		rr := do(t, h, http.MethodPost, "/v1/transactions", tok, tc.body)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d: %s", tc.name, rr.Code, rr.Body.String())
		}
		var e errResp
		_ = json.NewDecoder(rr.Body).Decode(&e)
		if e.Code != tc.code {
			t.Fatalf("%s: code %q, want %q", tc.name, e.Code, tc.code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rr.Code)
	}
}

func TestAuth(t *testing.T) {
	_, h := setup(t)
	if rr := do(t, h, http.MethodGet, "/v1/me", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/v1/reports/monthly", "not.a.token", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rr.Code)
	}
	tok := login(t, h, "ana@example.com")
	rr := do(t, h, http.MethodGet, "/v1/me", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me: %d", rr.Code)
	}
	tampered := tok + "A"
	if rr := do(t, h, http.MethodGet, "/v1/me", tampered, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rr.Code)
	}

	rr = do(t, h, http.MethodPost, "/v1/sessions", "", map[string]string{"email": "ana@example.com", "password": "nope"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rr.Code)
	}
	rr = do(t, h, http.MethodPost, "/v1/users", "", map[string]string{"name": "Ana", "email": "ANA@example.com", "password": "s3cret"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rr.Code)
	}
}

func TestTokenIssuer(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ti := tokenIssuer{secret: []byte("k"), issuer: "smartbudget", ttl: time.Minute, now: func() time.Time { return now }}
	id := uuid.New()
	tok, exp, err := ti.sign(id)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !exp.Equal(now.Add(time.Minute)) {
		t.Fatalf("exp %v", exp)
	}
	claims, err := ti.verify(tok)
	if err != nil || claims.Subject != id.String() {
		t.Fatalf("verify: %v %+v", err, claims)
	}
	later := ti
	later.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := later.verify(tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}
	other := ti
	other.secret = []byte("other")
	if _, err := other.verify(tok); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestDictionaryHealthAndMetrics(t *testing.T) {
	_, h := setup(t)
	rr := do(t, h, http.MethodGet, "/v1/dictionary/categories", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("dictionary: %d", rr.Code)
	}
	var dict struct {
		Items   []categoryDefResponse `json:"items"`
		Default string                `json:"default"`
	}
	_ = json.NewDecoder(rr.Body).Decode(&dict)
	if len(dict.Items) != 7 || dict.Items[0].Name != "Food" || dict.Items[1].Code != "transportation" || !dict.Items[0].Curated || dict.Default != "Other" {
		t.Fatalf("unexpected dictionary: %+v", dict)
	}
	if rr := do(t, h, http.MethodGet, "/healthz", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/readyz", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/metrics", "", nil); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "smartbudget_http_requests_total") {
		t.Fatalf("metrics: %d", rr.Code)
	}

	_, down := setup(t, failingReady{})
	if rr := do(t, down, http.MethodGet, "/readyz", "", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestReport_EmptyPeriod(t *testing.T) {
	_, h := setup(t)
	tok := login(t, h, "ana@example.com")
	rr := do(t, h, http.MethodGet, "/v1/reports/monthly?period=2030-01", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("report: %d", rr.Code)
	}
	var rep reportResponse
	_ = json.NewDecoder(rr.Body).Decode(&rep)
	if rep.ExpenseRatio != nil || rep.TopCategory != "No expenses" || len(rep.Slices) != 1 || !rep.Slices[0].Empty {
		t.Fatalf("unexpected empty report: %+v", rep)
	}
	if !strings.HasPrefix(rep.Insight, "Add income") {
		t.Fatalf("insight %q", rep.Insight)
	}
}

func completionLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if rec["msg"] == "request complete" {
			out = append(out, rec)
		}
	}
	return out
}

func TestRequestLogger_RecordsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	_, h := setupWithLogger(t, logger)
	tok := login(t, h, "ana@example.com")

	rr := do(t, h, http.MethodGet, "/v1/me", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me: %d", rr.Code)
	}
	var me userResponse
	_ = json.NewDecoder(rr.Body).Decode(&me)

	lines := completionLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 completion lines, got %d: %s", len(lines), buf.String())
	}
	for _, rec := range lines[:2] {
		if _, ok := rec["user_id"]; ok {
			t.Fatalf("unauthenticated request logged a user: %v", rec)
		}
	}
	last := lines[2]
	if last["user_id"] != me.ID.String() || last["route"] != "/v1/me" || last["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected completion line: %v", last)
	}
}
