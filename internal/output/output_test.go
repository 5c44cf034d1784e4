package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	err := w.OK(map[string]any{"id": "abc"}, WithSummary("1 session"))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "1 session", resp.Summary)
}

func TestErrJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	require.NoError(t, w.Err(ErrAuth("Session expired")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, CodeAuth, resp.Code)
	assert.Equal(t, "Session expired", resp.Error)
	assert.Equal(t, "Run: rsq auth login", resp.Hint)
}

func TestErrValidationDetails(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	details := json.RawMessage(`{"email":["invalid format"]}`)
	require.NoError(t, w.Err(ErrValidation(422, "Validation failed", details)))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, CodeValidation, resp.Code)
	assert.JSONEq(t, string(details), string(resp.Details))
}

func TestQuietModeStripsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatQuiet, Writer: &buf})

	require.NoError(t, w.OK(map[string]any{"id": "s1"}, WithSummary("ignored")))

	var data map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "s1", data["id"])
	assert.NotContains(t, buf.String(), "ignored")
}

func TestIDsModeList(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatIDs, Writer: &buf})

	require.NoError(t, w.OK([]map[string]any{{"id": "a"}, {"id": "b"}}))
	assert.Equal(t, "a\nb\n", buf.String())
}

func TestIDsModeItemsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatIDs, Writer: &buf})

	require.NoError(t, w.OK(json.RawMessage(`{"items":[{"id":"x"},{"id":"y"}],"total":2}`)))
	assert.Equal(t, "x\ny\n", buf.String())
}

func TestCountMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatCount, Writer: &buf})

	require.NoError(t, w.OK(json.RawMessage(`{"items":[{},{},{}],"total":3}`)))
	assert.Equal(t, "3\n", buf.String())
}

func TestCountModeSingleObject(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatCount, Writer: &buf})

	require.NoError(t, w.OK(map[string]any{"id": "one"}))
	assert.Equal(t, "1\n", buf.String())
}

func TestTextModeSummaryFirst(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatText, Writer: &buf})

	require.NoError(t, w.OK(map[string]any{"id": "s1"}, WithSummary("session s1")))
	out := buf.String()
	assert.Contains(t, out, "session s1\n")
	assert.Contains(t, out, `"id": "s1"`)
}

func TestTextModeError(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatText, Writer: &buf})

	require.NoError(t, w.Err(ErrNotFound("Session", "s1")))
	assert.Equal(t, "error: Session not found: s1\n", buf.String())
}

func TestAsErrorPassthrough(t *testing.T) {
	orig := ErrForbidden("Access denied")
	got := AsError(orig)
	assert.Same(t, orig, got)

	wrapped := AsError(errors.New("boom"))
	assert.Equal(t, CodeAPI, wrapped.Code)
	assert.Equal(t, "boom", wrapped.Message)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeUsage, ExitUsage},
		{CodeNotFound, ExitNotFound},
		{CodeAuth, ExitAuth},
		{CodeCredentials, ExitAuth},
		{CodeForbidden, ExitForbidden},
		{CodeValidation, ExitValidation},
		{CodeRateLimit, ExitRateLimit},
		{CodeNetwork, ExitNetwork},
		{CodeAPI, ExitAPI},
		{"anything-else", ExitAPI},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.code))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrNetwork(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Network error")
	assert.Contains(t, err.Error(), "connection refused")
}
