package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldservice/internal/adapter/automation"
	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/adapter/persistence/memstore"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router *gin.Engine
	store  *memstore.Store
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	bus := automation.NewBus(10)
	engine := usecase.NewWorkflowUseCase(store, bus)
	h := Handlers{
		Workflow: handlers.NewWorkflowHandler(engine),
		Estimate: handlers.NewEstimateHandler(usecase.NewEstimateUseCase(store), usecase.NewConversionUseCase(store, bus)),
		Visit:    handlers.NewVisitHandler(usecase.NewVisitUseCase(store, bus)),
		Payment:  handlers.NewInvoicePaymentHandler(usecase.NewInvoicePaymentUseCase(store, memstore.NewPaymentRepository(), nil, engine, bus, true)),
	}
	return apiFixture{router: NewRouter(h), store: store}
}

func (f apiFixture) call(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.HeaderUserID, "owner-1")
	req.Header.Set(handlers.HeaderAccountID, "acc-1")
	req.Header.Set(handlers.HeaderRole, "owner")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestPing(t *testing.T) {
	f := newAPIFixture(t)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecuredRoutesNeedIdentity(t *testing.T) {
	f := newAPIFixture(t)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/capabilities", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEstimateToPaidInvoice(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SeedEstimate(ctx, entities.Estimate{ID: "est-1", AccountID: "acc-1", ClientID: "client-1", Status: entities.EstimateStatusDraft}))

	code, body := f.call(t, http.MethodPut, "/v1/estimates/est-1/line-items",
		`{"line_items":[{"description":"Condenser","quantity":1,"unit_price_cents":18999},{"description":"Labor","quantity":2,"unit_price_cents":3500}],"tax_rate_bps":825}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(28144), body["total_cents"])

	code, _ = f.call(t, http.MethodPost, "/v1/estimates/est-1/invoice", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	for _, to := range []string{"sent", "approved"} {
		code, body = f.call(t, http.MethodPost, "/v1/estimates/est-1/transitions", `{"to":"`+to+`"}`)
		require.Equal(t, http.StatusOK, code, body)
	}

	code, body = f.call(t, http.MethodPut, "/v1/estimates/est-1/line-items",
		`{"line_items":[{"description":"Extra","quantity":1,"unit_price_cents":100}]}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ESTIMATE_NOT_DRAFT", body["code"])

	code, first := f.call(t, http.MethodPost, "/v1/estimates/est-1/invoice", "")
	require.Equal(t, http.StatusOK, code, first)
	code, second := f.call(t, http.MethodPost, "/v1/estimates/est-1/invoice", "")
	require.Equal(t, http.StatusOK, code)
	invoiceID, _ := first["id"].(string)
	require.NotEmpty(t, invoiceID)
	assert.Equal(t, invoiceID, second["id"])
	assert.Equal(t, float64(28144), first["total_cents"])
	assert.Equal(t, "draft", first["status"])

	code, body = f.call(t, http.MethodPost, "/v1/invoices/"+invoiceID+"/payments", `{"amount_cents":100}`)
	assert.Equal(t, http.StatusConflict, code, body)

	code, body = f.call(t, http.MethodPost, "/v1/invoices/"+invoiceID+"/transitions", `{"to":"sent"}`)
	require.Equal(t, http.StatusOK, code, body)

	code, body = f.call(t, http.MethodPost, "/v1/invoices/"+invoiceID+"/payments", `{"amount_cents":10000}`)
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "partial", body["invoice"].(map[string]any)["status"])

	code, body = f.call(t, http.MethodPost, "/v1/invoices/"+invoiceID+"/payments", `{"amount_cents":18144}`)
	require.Equal(t, http.StatusCreated, code, body)
	inv := body["invoice"].(map[string]any)
	assert.Equal(t, "paid", inv["status"])
	assert.Equal(t, float64(0), inv["amount_due_cents"])

	code, body = f.call(t, http.MethodPost, "/v1/invoices/"+invoiceID+"/transitions", `{"to":"void"}`)
	assert.Equal(t, http.StatusConflict, code, body)
}

func TestWorkflowMetadataRoutes(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.call(t, http.MethodGet, "/v1/workflow/invoices/transitions?from=sent", "")
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []any{"partial", "paid", "void"}, body["targets"])

	code, body = f.call(t, http.MethodGet, "/v1/capabilities", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "owner", body["role"])
}

func TestTechCannotReadOfficeRecords(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SeedInvoice(ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", ClientID: "client-1", Status: entities.InvoiceStatusSent, TotalCents: 5000}))
	require.NoError(t, f.store.SeedJob(ctx, entities.Job{ID: "job-1", AccountID: "acc-1", Title: "Boiler", Status: entities.JobStatusScheduled}))

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(handlers.HeaderUserID, "tech-1")
		req.Header.Set(handlers.HeaderAccountID, "acc-1")
		req.Header.Set(handlers.HeaderRole, "tech")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, get("/v1/invoices/inv-1"))
	assert.Equal(t, http.StatusOK, get("/v1/jobs/job-1"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusNoContent)
	})
	srv := &http.Server{Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())
	drained := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, ln, func() { close(drained) })
	}()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case <-drained:
		t.Fatal("drain ran before the in-flight request finished")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.Equal(t, http.StatusNoContent, <-status)
	<-drained
}
