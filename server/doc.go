// Package server hosts the transcription HTTP API.
//
// The API exposes three routes: GET /healthz for liveness, GET
// /v1/providers listing registered backends with their availability, and
// POST /v1/transcriptions accepting a multipart audio upload plus the
// target provider, optional model, language, and diarize fields.
//
// Every request carries an X-Request-Id, is logged structurally, and
// failures are rendered with the errors package envelope so clients see
// the same code taxonomy the library returns.
package server
