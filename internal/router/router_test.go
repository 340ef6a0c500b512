package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// echo answers every route with its own name so tests can check dispatch.
type echo struct{}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(name)) }
}

func (echo) Index(w http.ResponseWriter, r *http.Request) {
	named("index")(w, r)
}

func (echo) Health(w http.ResponseWriter, r *http.Request) {
	named("health")(w, r)
}

func (echo) QueueMessage(w http.ResponseWriter, r *http.Request) {
	named("queue")(w, r)
}

func (echo) GetSentMessages(w http.ResponseWriter, r *http.Request) {
	named("sent")(w, r)
}

func (echo) StartStopScheduler(w http.ResponseWriter, r *http.Request) {
	named("scheduler")(w, r)
}

func (echo) Balance(w http.ResponseWriter, r *http.Request) {
	named("balance")(w, r)
}

func (echo) Prices(w http.ResponseWriter, r *http.Request) {
	named("prices")(w, r)
}

func (echo) LookupOperator(w http.ResponseWriter, r *http.Request) {
	named("operator")(w, r)
}

func (echo) CreateSubAccount(w http.ResponseWriter, r *http.Request) {
	named("sub-account")(w, r)
}

func (echo) CreateKeyword(w http.ResponseWriter, r *http.Request) {
	named("keyword")(w, r)
}

func (echo) Start(w http.ResponseWriter, r *http.Request) {
	named("verify")(w, r)
}

func (echo) Status(w http.ResponseWriter, r *http.Request) {
	named("verify-status")(w, r)
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, AppDeps{Home: echo{}, Message: echo{}, Account: echo{}, Verification: echo{}})

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/", "index"},
		{http.MethodGet, "/health", "health"},
		{http.MethodPost, "/messages", "queue"},
		{http.MethodGet, "/messages/sent", "sent"},
		{http.MethodPost, "/scheduler", "scheduler"},
		{http.MethodGet, "/account/balance", "balance"},
		{http.MethodGet, "/account/prices", "prices"},
		{http.MethodGet, "/operators/447777777777", "operator"},
		{http.MethodPost, "/sub-accounts", "sub-account"},
		{http.MethodPost, "/keywords", "keyword"},
		{http.MethodPost, "/verifications", "verify"},
		{http.MethodGet, "/verifications/abc", "verify-status"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Body.String() != tt.want {
			t.Errorf("%s %s: got %q, want %q", tt.method, tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, AppDeps{Home: echo{}, Message: echo{}, Account: echo{}, Verification: echo{}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
