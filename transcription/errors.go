package transcription

import (
	"fmt"
	"net/http"

	"github.com/tmm22/speechkit/errors"
)

// Error codes for the transcription taxonomy. The set is closed: every
// failure an adapter or the router can produce carries one of these.
const (
	// ErrCodeUnsupportedProvider indicates no adapter is registered for
	// the requested provider tag.
	ErrCodeUnsupportedProvider errors.ErrorCode = "UNSUPPORTED_PROVIDER"
	// ErrCodeMissingAPIKey indicates the credential for the provider is
	// absent or empty.
	ErrCodeMissingAPIKey errors.ErrorCode = "MISSING_API_KEY"
	// ErrCodeInvalidAPIKey indicates the backend explicitly rejected the
	// credential. Reserved: response validation reports non-2xx statuses
	// as API_REQUEST_FAILED without guessing at auth semantics.
	ErrCodeInvalidAPIKey errors.ErrorCode = "INVALID_API_KEY"
	// ErrCodeAudioFileNotFound indicates the audio reference could not be read.
	ErrCodeAudioFileNotFound errors.ErrorCode = "AUDIO_FILE_NOT_FOUND"
	// ErrCodeAPIRequestFailed indicates a non-2xx HTTP outcome, including
	// job failure and polling timeout.
	ErrCodeAPIRequestFailed errors.ErrorCode = "API_REQUEST_FAILED"
	// ErrCodeNetworkError indicates a transport-level failure distinct
	// from an HTTP status failure.
	ErrCodeNetworkError errors.ErrorCode = "NETWORK_ERROR"
	// ErrCodeNoTranscriptionReturned indicates a 2xx response that yields
	// no usable transcript text.
	ErrCodeNoTranscriptionReturned errors.ErrorCode = "NO_TRANSCRIPTION_RETURNED"
	// ErrCodeDataEncodingError indicates the adapter failed to construct
	// its own outgoing request.
	ErrCodeDataEncodingError errors.ErrorCode = "DATA_ENCODING_ERROR"
)

func init() {
	errors.RegisterRetryable(ErrCodeNetworkError)
}

// UnsupportedProvider creates the error returned when dispatch finds no
// adapter for a provider tag.
func UnsupportedProvider(tag string) *errors.AppError {
	return errors.New(ErrCodeUnsupportedProvider,
		fmt.Sprintf("no transcription provider registered for %q", tag),
		http.StatusBadRequest).WithDetail("provider", tag)
}

// MissingAPIKey creates the error returned when the credential store has
// no secret for the provider.
func MissingAPIKey(provider string) *errors.AppError {
	return errors.New(ErrCodeMissingAPIKey,
		fmt.Sprintf("no API key configured for %s", provider),
		http.StatusUnauthorized).WithDetail("provider", provider)
}

// InvalidAPIKey creates the error for a backend-reported credential
// rejection.
func InvalidAPIKey(provider string) *errors.AppError {
	return errors.New(ErrCodeInvalidAPIKey,
		fmt.Sprintf("the API key for %s was rejected", provider),
		http.StatusUnauthorized).WithDetail("provider", provider)
}

// AudioFileNotFound creates the error returned when the audio file cannot
// be read.
func AudioFileNotFound(path string, cause error) *errors.AppError {
	return errors.New(ErrCodeAudioFileNotFound,
		fmt.Sprintf("audio file could not be read: %s", path),
		http.StatusBadRequest).WithDetail("path", path).WithCause(cause)
}

// APIRequestFailed creates the error for a non-2xx HTTP outcome. The
// message is the backend's raw response text where available; status is
// the backend's HTTP status (504 for polling timeouts).
func APIRequestFailed(status int, message string) *errors.AppError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return errors.New(ErrCodeAPIRequestFailed, message, status).
		WithDetail("status_code", status)
}

// NetworkError creates the error for a transport-level failure.
func NetworkError(cause error) *errors.AppError {
	return errors.New(ErrCodeNetworkError, "network request failed",
		http.StatusBadGateway).WithCause(cause)
}

// NoTranscriptionReturned creates the error for a success response that
// contains no usable transcript.
func NoTranscriptionReturned(provider string) *errors.AppError {
	return errors.New(ErrCodeNoTranscriptionReturned,
		fmt.Sprintf("%s returned no transcription", provider),
		http.StatusBadGateway).WithDetail("provider", provider)
}

// DataEncodingError creates the error for a failure to construct the
// outgoing request. A programming-level condition, not a backend fault.
func DataEncodingError(cause error) *errors.AppError {
	return errors.New(ErrCodeDataEncodingError, "failed to encode request",
		http.StatusInternalServerError).WithCause(cause)
}

// StatusOf returns the backend HTTP status carried by an
// API_REQUEST_FAILED error, or 0 for other errors.
func StatusOf(err error) int {
	appErr := errors.As(err)
	if appErr == nil || appErr.Code != ErrCodeAPIRequestFailed {
		return 0
	}
	if status, ok := appErr.Details["status_code"].(int); ok {
		return status
	}
	return 0
}
