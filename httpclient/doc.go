// Package httpclient provides a configurable HTTP client used by every
// transcription adapter: base-URL resolution, pluggable authentication
// (bearer, token scheme, API key header/query, custom), an ordered
// multipart/form-data builder, full response buffering, and status-code
// classification into typed errors.
//
// The client never retries on its own unless a Retry config is supplied;
// adapters rely on that to keep HTTP failures fail-fast.
package httpclient
