package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"bursar/internal/accesscontrol"
	"bursar/internal/events"
	"bursar/internal/period"
	"bursar/internal/settings"
	id "bursar/pkg/domain"
	adminmw "bursar/pkg/platform/middleware/admin"
	"bursar/pkg/requestcontext"
	"bursar/pkg/secrets"
)

const adminToken = "operator-token"

type adminFixture struct {
	router    chi.Router
	admin     id.AccountID
	outsider  id.AccountID
	published *events.MemoryPublisher
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	admin := id.NewAccountID()
	outsider := id.NewAccountID()
	checker, err := accesscontrol.NewStaticChecker([]string{admin.String()})
	if err != nil {
		t.Fatal(err)
	}

	published := events.NewMemoryPublisher()

	settingsSvc, err := settings.New(
		settings.NewInMemoryStore(settings.Settings{FeeAmount: 100, PayoutAmount: 500, OracleRef: "http://oracle.local"}),
		checker,
		settings.WithLogger(logger),
		settings.WithPublisher(published),
	)
	if err != nil {
		t.Fatal(err)
	}
	periodSvc, err := period.New(
		period.NewInMemoryStore(id.Period{Month: 6, Year: 2024}),
		checker,
		2000,
		period.WithLogger(logger),
		period.WithPublisher(published),
	)
	if err != nil {
		t.Fatal(err)
	}

	tokenHash, err := secrets.Hash(adminToken)
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(adminmw.RequireAdminToken(tokenHash, logger))
	New(settingsSvc, periodSvc, logger).Register(r)

	return &adminFixture{router: r, admin: admin, outsider: outsider, published: published}
}

// do sends a request as the given actor with the admin token attached unless
// token is empty.
func (f *adminFixture) do(t *testing.T, method, path, token string, actor id.AccountID, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	if !actor.IsNil() {
		req = req.WithContext(requestcontext.WithAccountID(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminTokenRequired(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodGet, "/admin/settings", "", f.admin, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin token, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/admin/settings", "wrong-token", f.admin, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong admin token, got %d", rec.Code)
	}
}

func TestNonAdminActorRejected(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/settings/fee", adminToken, f.outsider, map[string]int64{"amount": 250})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin actor, got %d", rec.Code)
	}

	// The fee must be untouched.
	rec = f.do(t, http.MethodGet, "/admin/settings", adminToken, f.admin, nil)
	var resp SettingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FeeAmount != 100 {
		t.Fatalf("fee changed by non-admin actor: %d", resp.FeeAmount)
	}
}

func TestSetFeeAndReadBack(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/settings/fee", adminToken, f.admin, map[string]int64{"amount": 250})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/admin/settings", adminToken, f.admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp SettingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FeeAmount != 250 || resp.PayoutAmount != 500 {
		t.Fatalf("unexpected settings: %+v", resp)
	}

	if got := f.published.OfType(events.TypeFeeAmountChanged); len(got) != 1 {
		t.Fatalf("expected one fee change notification, got %d", len(got))
	}
}

func TestSetPayout(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/settings/payout", adminToken, f.admin, map[string]int64{"amount": 750})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	if got := f.published.OfType(events.TypePayoutAmountChanged); len(got) != 1 {
		t.Fatalf("expected one payout change notification, got %d", len(got))
	}
}

func TestSetAmountRejectsNonPositive(t *testing.T) {
	f := newAdminFixture(t)

	for _, amount := range []int64{0, -5} {
		rec := f.do(t, http.MethodPut, "/admin/settings/fee", adminToken, f.admin, map[string]int64{"amount": amount})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for amount %d, got %d", amount, rec.Code)
		}
	}
}

func TestSetOracleRef(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/settings/oracle", adminToken, f.admin, map[string]string{"reference": "http://oracle-v2.local"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/admin/settings", adminToken, f.admin, nil)
	var resp SettingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.OracleRef != "http://oracle-v2.local" {
		t.Fatalf("oracle ref not updated: %s", resp.OracleRef)
	}

	rec = f.do(t, http.MethodPut, "/admin/settings/oracle", adminToken, f.admin, map[string]string{"reference": "   "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blank reference, got %d", rec.Code)
	}
}

func TestSetMonthAndYear(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/period/month", adminToken, f.admin, map[string]int{"month": 7})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = f.do(t, http.MethodPut, "/admin/period/year", adminToken, f.admin, map[string]int{"year": 2025})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/admin/period", adminToken, f.admin, nil)
	var resp PeriodResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Month != 7 || resp.Year != 2025 {
		t.Fatalf("unexpected period: %+v", resp)
	}

	// A month change also announces the payment reminder.
	if got := f.published.OfType(events.TypePaymentReminder); len(got) != 1 {
		t.Fatalf("expected one payment reminder, got %d", len(got))
	}
}

func TestSetMonthOutOfRange(t *testing.T) {
	f := newAdminFixture(t)

	for _, month := range []int{-1, 13} {
		rec := f.do(t, http.MethodPut, "/admin/period/month", adminToken, f.admin, map[string]int{"month": month})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for month %d, got %d", month, rec.Code)
		}
	}
}

func TestSetYearBelowFloor(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPut, "/admin/period/year", adminToken, f.admin, map[string]int{"year": 1999})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for year below floor, got %d", rec.Code)
	}
}
