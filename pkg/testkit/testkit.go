// Package testkit holds the HTTP test helpers the controller tests share.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON wrapper every API response uses.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Do runs one request through handler and returns the recorder. A non-nil
// body is JSON-encoded and sent with the right content type.
func Do(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DecodeEnvelope asserts the recorded status code and unwraps the response
// envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) Envelope {
	t.Helper()

	assert.Equal(t, wantCode, rec.Code, "HTTP status code mismatch\nbody: %s", rec.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not a valid envelope\nbody: %s", rec.Body.String())
	return env
}

// DecodeData asserts the status code and decodes the envelope's data
// payload into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, dest interface{}) {
	t.Helper()

	env := DecodeEnvelope(t, rec, wantCode)
	require.NoError(t, json.Unmarshal(env.Data, dest),
		"envelope data does not decode into %T\ndata: %s", dest, string(env.Data))
}

// FieldErrors asserts a 422 validation response and returns its per-field
// messages.
func FieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	env := DecodeEnvelope(t, rec, http.StatusUnprocessableEntity)

	fields := map[string]string{}
	require.NoError(t, json.Unmarshal(env.Errors, &fields),
		"envelope errors are not a field map: %s", string(env.Errors))
	return fields
}
