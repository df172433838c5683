package nacex

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"shipping-management/internal/config"
)

type recordedCall struct {
	Method string
	Data   string
	User   string
	Pass   string
}

type fakeResponse struct {
	Status int
	Body   string
}

// fakeNacex answers NACEX methods with canned responses and records every call.
type fakeNacex struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]fakeResponse
	server    *httptest.Server
}

func newFakeNacex(responses map[string]fakeResponse) *fakeNacex {
	f := &fakeNacex{responses: responses}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{
			Method: q.Get("method"),
			Data:   q.Get("data"),
			User:   q.Get("user"),
			Pass:   q.Get("pass"),
		})
		resp, ok := f.responses[q.Get("method")]
		f.mu.Unlock()

		if !ok {
			resp = fakeResponse{Status: http.StatusOK, Body: "ERROR: unknown method"}
		}
		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		w.WriteHeader(resp.Status)
		_, _ = w.Write([]byte(resp.Body))
	}))
	return f
}

func (f *fakeNacex) Close() { f.server.Close() }

func (f *fakeNacex) Client() *Client {
	return NewClient(config.NacexConfig{BaseURL: f.server.URL, Timeout: 5 * time.Second}, nil)
}

func (f *fakeNacex) Methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method
	}
	return out
}

func (f *fakeNacex) Call(method string) (recordedCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Method == method {
			return c, true
		}
	}
	return recordedCall{}, false
}
