package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string, auth *AuthConfig) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, Timeout: 5 * time.Second, Auth: auth})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestClient_Do_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ping" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/v1/ping"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestClient_Do_AuthSchemes(t *testing.T) {
	tests := []struct {
		name       string
		auth       *AuthConfig
		wantHeader string
		wantValue  string
	}{
		{"bearer", BearerAuth("sk-123"), "Authorization", "Bearer sk-123"},
		{"token scheme", TokenAuth("dg-456"), "Authorization", "Token dg-456"},
		{"custom header", APIKeyAuthHeader("xi-789", "xi-api-key"), "Xi-Api-Key", "xi-789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(tt.wantHeader)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, tt.auth)
			if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
				t.Fatalf("Do() error: %v", err)
			}
			if got != tt.wantValue {
				t.Errorf("header = %q, want %q", got, tt.wantValue)
			}
		})
	}
}

func TestClient_Do_QueryAuth(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("api_key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, APIKeyAuthQuery("qk-1", "api_key"))
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if got != "qk-1" {
		t.Errorf("query api_key = %q", got)
	}
}

func TestClient_Do_NonOKReturnsBodyAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if resp == nil || string(resp.Body) != "rate limited" {
		t.Fatalf("resp = %+v", resp)
	}
	if !IsRetryable(err) {
		t.Error("429 should be retryable")
	}
}

func TestClient_Do_MultipartBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("model") != "whisper-1" {
			t.Errorf("model = %q", r.FormValue("model"))
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
		} else {
			f.Close()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	body := NewMultipartBody().
		AddFile("file", "a.wav", []byte("xx"), "audio/wav").
		AddField("model", "whisper-1")

	c := newTestClient(t, srv.URL, nil)
	if _, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: body}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_BaseURLJoin(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/", nil)
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/v2/upload"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if gotPath != "/v2/upload" {
		t.Errorf("path = %q", gotPath)
	}

	// A full URL in Path bypasses BaseURL.
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/absolute"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !strings.HasPrefix(gotPath, "/absolute") || resp.StatusCode != http.StatusOK {
		t.Errorf("absolute path dispatch failed: %q", gotPath)
	}
}

func TestPost_TypedDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"job-1","status":"queued"}`))
	}))
	defer srv.Close()

	type createResp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	c := newTestClient(t, srv.URL, nil)
	resp, err := Post[createResp](c, context.Background(), "/jobs", map[string]string{"audio_url": "u"})
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if resp.Data.ID != "job-1" || resp.Data.Status != "queued" {
		t.Errorf("decoded = %+v", resp.Data)
	}
}
