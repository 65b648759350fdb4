package testutil

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest captures one request received by a Backend.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FormValue extracts a multipart form field from the recorded body.
func (r *RecordedRequest) FormValue(t *testing.T, name string) string {
	t.Helper()
	form := r.parseMultipart(t)
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0]
}

// HasFormField reports whether the multipart body contains a field.
func (r *RecordedRequest) HasFormField(t *testing.T, name string) bool {
	t.Helper()
	_, ok := r.parseMultipart(t).Value[name]
	return ok
}

// FormFile extracts a multipart file part by field name.
func (r *RecordedRequest) FormFile(t *testing.T, name string) (filename string, data []byte) {
	t.Helper()
	files, ok := r.parseMultipart(t).File[name]
	if !ok || len(files) == 0 {
		t.Fatalf("no file part %q in request", name)
	}
	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("open file part %q: %v", name, err)
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		t.Fatalf("read file part %q: %v", name, err)
	}
	return files[0].Filename, data
}

func (r *RecordedRequest) parseMultipart(t *testing.T) *multipart.Form {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("request body is not multipart: %v", r.Header.Get("Content-Type"))
	}
	reader := multipart.NewReader(strings.NewReader(string(r.Body)), params["boundary"])
	form, err := reader.ReadForm(16 << 20)
	if err != nil {
		t.Fatalf("parse multipart body: %v", err)
	}
	return form
}

// Backend is a fake HTTP backend that records every request and serves
// scripted responses per path.
type Backend struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests []RecordedRequest
	handler  http.HandlerFunc
}

// NewBackend starts a fake backend driven by handler. The server is shut
// down when the test ends.
func NewBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()
	b := &Backend{handler: handler}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the backend's base URL.
func (b *Backend) URL() string { return b.server.URL }

// Requests returns a copy of all recorded requests.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestCount returns how many requests the backend has received.
func (b *Backend) RequestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	b.mu.Unlock()

	if b.handler != nil {
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		b.handler(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// JSON writes a JSON response body with status 200.
func JSON(w http.ResponseWriter, body string) {
	JSONStatus(w, http.StatusOK, body)
}

// JSONStatus writes a JSON response body with an explicit status.
func JSONStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
