package transcription

import (
	"testing"

	"github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/httpclient"
)

func TestValidateResponse_SuccessPassthrough(t *testing.T) {
	resp := &httpclient.Response{StatusCode: 201, Body: []byte(`{"id":"x"}`)}
	body, err := ValidateResponse(resp)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}
	if string(body) != `{"id":"x"}` {
		t.Errorf("body = %q", body)
	}
}

func TestValidateResponse_RateLimited(t *testing.T) {
	resp := &httpclient.Response{StatusCode: 429, Body: []byte("rate limited")}
	_, err := ValidateResponse(resp)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := errors.As(err)
	if appErr == nil || appErr.Code != ErrCodeAPIRequestFailed {
		t.Fatalf("unexpected error: %v", err)
	}
	if appErr.Message != "rate limited" {
		t.Errorf("Message = %q", appErr.Message)
	}
	if StatusOf(err) != 429 {
		t.Errorf("StatusOf = %d", StatusOf(err))
	}
}

func TestValidateResponse_UnreadableBody(t *testing.T) {
	resp := &httpclient.Response{StatusCode: 500, Body: []byte{0xff, 0xfe, 0xfd}}
	_, err := ValidateResponse(resp)
	appErr := errors.As(err)
	if appErr == nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appErr.Message != "request failed with status 500" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestValidateResponse_EmptyErrorBody(t *testing.T) {
	resp := &httpclient.Response{StatusCode: 404}
	_, err := ValidateResponse(resp)
	appErr := errors.As(err)
	if appErr == nil || appErr.Message != "request failed with status 404" {
		t.Fatalf("unexpected error: %v", err)
	}
}
