package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bursar/internal/accesscontrol"
	adminhandler "bursar/internal/admin/handler"
	"bursar/internal/gateway"
	gatewayhandler "bursar/internal/gateway/handler"
	memstore "bursar/internal/ledger/store/memory"
	"bursar/internal/oracle"
	"bursar/internal/period"
	"bursar/internal/settings"
	"bursar/internal/token"
	"bursar/internal/transfer"
	id "bursar/pkg/domain"
	"bursar/pkg/secrets"
)

const testAdminToken = "operator-token"

type routerFixture struct {
	router http.Handler
	tokens *token.Service
	payer  id.AccountID
	payee  id.AccountID
	admin  id.AccountID
}

func newRouterFixture(t *testing.T, kind id.ParticipantClass) *routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &routerFixture{
		tokens: token.NewService("test-signing-key", "bursar", "bursar"),
		payer:  id.NewAccountID(),
		payee:  id.NewAccountID(),
		admin:  id.NewAccountID(),
	}

	checker, err := accesscontrol.NewStaticChecker([]string{f.admin.String()})
	if err != nil {
		t.Fatal(err)
	}

	settingsSvc, err := settings.New(
		settings.NewInMemoryStore(settings.Settings{FeeAmount: 100, PayoutAmount: 500, OracleRef: "http://oracle.local"}),
		checker,
		settings.WithLogger(logger),
	)
	if err != nil {
		t.Fatal(err)
	}
	periodSvc, err := period.New(
		period.NewInMemoryStore(id.Period{Month: 6, Year: 2024}),
		checker,
		2000,
		period.WithLogger(logger),
	)
	if err != nil {
		t.Fatal(err)
	}

	gatewaySvc, err := gateway.New(
		oracle.MockClient{Kind: kind, TTL: time.Hour},
		memstore.New(),
		&transfer.MockTransferer{},
		settingsSvc,
		periodSvc,
		gateway.WithLogger(logger),
	)
	if err != nil {
		t.Fatal(err)
	}

	tokenHash, err := secrets.Hash(testAdminToken)
	if err != nil {
		t.Fatal(err)
	}

	f.router = NewRouter(Deps{
		Payments:       gatewayhandler.New(gatewaySvc, logger),
		Admin:          adminhandler.New(settingsSvc, periodSvc, logger),
		Tokens:         f.tokens,
		AdminTokenHash: tokenHash,
		Logger:         logger,
	})
	return f
}

func (f *routerFixture) bearer(t *testing.T, account id.AccountID) string {
	t.Helper()
	tok, err := f.tokens.GenerateAccessToken(account, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func do(t *testing.T, router http.Handler, method, path string, headers map[string]string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetricsUnauthenticated(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayer)

	rec := do(t, f.router, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}

	rec = do(t, f.router, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}

func TestPaymentsRequireBearerToken(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayer)

	rec := do(t, f.router, http.MethodPost, "/payments/fee", nil, map[string]int64{"amount": 100})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}

	rec = do(t, f.router, http.MethodPost, "/payments/fee",
		map[string]string{"Authorization": "Bearer not-a-token"},
		map[string]int64{"amount": 100})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestFeeFlowThroughRouter(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayer)
	headers := map[string]string{"Authorization": f.bearer(t, f.payer)}

	rec := do(t, f.router, http.MethodPost, "/payments/fee", headers, map[string]int64{"amount": 100})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, f.router, http.MethodPost, "/payments/fee", headers, map[string]int64{"amount": 100})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeat, got %d", rec.Code)
	}
}

func TestPayoutFlowThroughRouter(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayee)
	headers := map[string]string{"Authorization": f.bearer(t, f.payee)}

	rec := do(t, f.router, http.MethodPost, "/payments/payout", headers, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminSurfaceThroughRouter(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayer)
	headers := map[string]string{
		"Authorization": f.bearer(t, f.admin),
		"X-Admin-Token": testAdminToken,
	}

	rec := do(t, f.router, http.MethodPut, "/admin/settings/fee", headers, map[string]int64{"amount": 250})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, f.router, http.MethodGet, "/admin/settings", headers, nil)
	var resp adminhandler.SettingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FeeAmount != 250 {
		t.Fatalf("expected fee 250, got %d", resp.FeeAmount)
	}

	// Admin token alone is not enough; the actor needs the capability.
	outsiderHeaders := map[string]string{
		"Authorization": f.bearer(t, f.payer),
		"X-Admin-Token": testAdminToken,
	}
	rec = do(t, f.router, http.MethodPut, "/admin/settings/fee", outsiderHeaders, map[string]int64{"amount": 999})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin actor, got %d", rec.Code)
	}
}

func TestAdminRequiresAdminToken(t *testing.T) {
	f := newRouterFixture(t, id.ClassPayer)

	rec := do(t, f.router, http.MethodGet, "/admin/settings",
		map[string]string{"Authorization": f.bearer(t, f.admin)}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin token, got %d", rec.Code)
	}
}
