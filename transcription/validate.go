package transcription

import (
	"strings"
	"unicode/utf8"

	"github.com/tmm22/speechkit/httpclient"
)

// ValidateResponse classifies a fully-read HTTP response. A 2xx status
// passes the body through untouched; anything else becomes
// API_REQUEST_FAILED carrying the status and the raw body text. Every
// adapter validates through this so error messages are uniform across
// backends.
func ValidateResponse(resp *httpclient.Response) ([]byte, error) {
	if resp.IsSuccess() {
		return resp.Body, nil
	}
	return nil, APIRequestFailed(resp.StatusCode, bodyText(resp.Body))
}

// bodyText renders a response body as a displayable message. Bodies that
// are empty or not valid UTF-8 collapse to an empty string so
// APIRequestFailed substitutes its status placeholder.
func bodyText(body []byte) string {
	if !utf8.Valid(body) {
		return ""
	}
	return strings.TrimSpace(string(body))
}
