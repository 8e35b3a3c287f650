package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/auth"
	"github.com/intradash/adminkit/internal/common/config"
	"github.com/intradash/adminkit/internal/service"
)

// recordedRequest is one call captured by the fake backend.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type fakeResponse struct {
	status int
	body   string
}

// fakeBackend records every request and serves canned responses keyed
// by "METHOD path".
type fakeBackend struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
	srv       *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{responses: make(map[string]fakeResponse)}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.ContentLength > 0 {
			body = make([]byte, r.ContentLength)
			r.Body.Read(body)
		}
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		resp, found := b.responses[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if !found {
			resp = fakeResponse{status: http.StatusOK, body: `{"success":true,"data":null}`}
		}
		w.WriteHeader(resp.status)
		fmt.Fprint(w, resp.body)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// on registers a canned response for a path relative to the API prefix.
func (b *fakeBackend) on(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method+" "+config.DefaultPrefix+path] = fakeResponse{status: status, body: body}
}

// calls returns the captured requests matching method and prefix-
// relative path.
func (b *fakeBackend) calls(method, path string) []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedRequest
	for _, r := range b.requests {
		if r.Method == method && r.Path == config.DefaultPrefix+path {
			out = append(out, r)
		}
	}
	return out
}

// harness is the fully wired provider stack over a fake backend.
type harness struct {
	backend  *fakeBackend
	store    *auth.MemoryStore
	auth     *auth.Service
	standard *Standard
	custom   *Custom
	combined *Combined
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := newFakeBackend(t)
	logger := zap.NewNop()
	api := apiclient.NewClient(&config.APIConfig{
		BaseURL: backend.srv.URL,
		Prefix:  config.DefaultPrefix,
		Timeout: 5 * time.Second,
	}, logger)

	store := auth.NewMemoryStore()
	require.NoError(t, store.Save("test-token"))
	authSvc := auth.NewService(api, store, logger)

	users := service.NewUsers(api)
	departments := service.NewDepartments(api)
	cards := service.NewCards(api)
	wifi := service.NewWifi(api)
	quickLinks := service.NewQuickLinks(api)
	userDepartments := service.NewUserDepartments(departments, logger)

	standard := NewStandard(users, departments, cards, wifi, quickLinks, authSvc, api.BaseURL(), logger)
	custom := NewCustom(userDepartments, departments, authSvc, api.BaseURL(), logger)
	combined, err := NewCombined(custom, standard)
	require.NoError(t, err)

	return &harness{
		backend:  backend,
		store:    store,
		auth:     authSvc,
		standard: standard,
		custom:   custom,
		combined: combined,
	}
}
