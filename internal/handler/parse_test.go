package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(maxBytes int) *ParseHandler {
	return NewParseHandler(maxBytes, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postParse(t *testing.T, h *ParseHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Parse(rec, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestParseHandler(t *testing.T) {
	h := newTestHandler(1024)

	t.Run("successful parse", func(t *testing.T) {
		body := `{"source": "f(1);\n?= f(x);", "filename": "a.polar"}`
		rec, resp := postParse(t, h, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, true, resp["ok"])

		lines := resp["lines"].([]any)
		require.Len(t, lines, 2)
		first := lines[0].(map[string]any)
		assert.Equal(t, "rule", first["kind"])
		assert.Equal(t, "f/1", first["name"])
		assert.Equal(t, "f(1);", first["text"])
		assert.Equal(t, float64(2), lines[1].(map[string]any)["line"])
	})

	t.Run("parse error", func(t *testing.T) {
		body := `{"source": "f(x) if\n  {a: 1, a: 2};", "filename": "policy.polar"}`
		rec, resp := postParse(t, h, body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, false, resp["ok"])
		assert.Equal(t, `policy.polar: duplicate key "a" (line 2, column 10)`, resp["error"])

		details := resp["details"].(map[string]any)
		assert.Equal(t, "duplicate_key", details["kind"])
		assert.Equal(t, float64(2), details["line"])
		assert.Equal(t, float64(10), details["column"])
		assert.Equal(t, float64(17), details["start"])
		assert.Equal(t, float64(18), details["end"])
	})

	t.Run("missing source", func(t *testing.T) {
		rec, resp := postParse(t, h, `{"filename": "a.polar"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request", resp["error"])
		assert.Equal(t, []any{"Source failed on required"}, resp["details"])
	})

	t.Run("malformed json", func(t *testing.T) {
		rec, resp := postParse(t, h, `{"source": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request payload", resp["error"])
	})
}

func TestParseHandlerSourceLimit(t *testing.T) {
	h := newTestHandler(8)

	rec, resp := postParse(t, h, `{"source": "f(1, 2, 3);"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []any{"Source failed on max=8"}, resp["details"])

	rec, resp = postParse(t, h, `{"source": "`+strings.Repeat("x", 2000)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large", resp["error"])
}
