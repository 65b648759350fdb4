// Package testutil provides shared helpers for adapter and server tests:
// temporary audio fixtures and a recording fake backend built on
// net/http/httptest that captures every request it receives.
package testutil
