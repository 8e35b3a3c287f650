package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/config"
)

// recordedRequest is one call captured by the fake backend.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// fakeBackend records every request and serves canned responses per
// method+path.
type fakeBackend struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
	srv       *httptest.Server
}

type fakeResponse struct {
	status int
	body   string
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

// on registers a canned response for "METHOD /api/v1/path".
func (b *fakeBackend) on(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method+" "+config.DefaultPrefix+path] = fakeResponse{status: status, body: body}
}

// calls returns the captured requests matching method and path, path
// being relative to the API prefix.
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

func (b *fakeBackend) client() *apiclient.Client {
	return apiclient.NewClient(&config.APIConfig{
		BaseURL: b.srv.URL,
		Prefix:  config.DefaultPrefix,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}
