package httpclient

import "testing"

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{200, true, "", false},
		{201, true, "", false},
		{204, true, "", false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{422, false, ErrCodeValidation, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}

	for _, tt := range tests {
		err := ClassifyStatusCode(tt.status, []byte("body"))
		if tt.wantNil {
			if err != nil {
				t.Errorf("status %d: expected nil, got %v", tt.status, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("status %d: expected error", tt.status)
			continue
		}
		if err.Code != tt.wantCode {
			t.Errorf("status %d: code = %s, want %s", tt.status, err.Code, tt.wantCode)
		}
		if err.Retryable != tt.retryable {
			t.Errorf("status %d: retryable = %v", tt.status, err.Retryable)
		}
		if string(err.Body) != "body" {
			t.Errorf("status %d: body not carried", tt.status)
		}
	}
}

func TestErrorString(t *testing.T) {
	e := ClassifyStatusCode(429, nil)
	if got := e.Error(); got != "httpclient: rate_limit (HTTP 429): HTTP 429" {
		t.Errorf("Error() = %q", got)
	}
}
