package presenter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLoadsEmbeddedSchemas(t *testing.T) {
	for _, name := range []string{"session", "item", "user", "team", "role", "quota"} {
		schema := Lookup(name)
		require.NotNil(t, schema, "schema %q must load", name)
		assert.Equal(t, name, schema.Entity)
		assert.NotEmpty(t, schema.Views.List.Columns)
	}
	assert.Nil(t, Lookup("unknown"))
}

func TestPresentSessionList(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"items": []any{
			map[string]any{"id": "s-1", "mode": "resumes", "status": "draft", "team_id": "t-1", "created_at": "2026-08-01T10:00:00Z"},
			map[string]any{"id": "s-2", "mode": "vacancies", "status": "executed", "team_id": "t-1", "created_at": "2026-08-02T10:00:00Z"},
		},
		"total": 2,
	}

	require.True(t, Present(&buf, data, "session"))
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "s-1")
	assert.Contains(t, out, "executed")
}

func TestPresentDetailSections(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"id":            "s-1",
		"mode":          "resumes",
		"status":        "failed",
		"team_id":       "t-1",
		"error_message": "upstream quota exhausted",
		"created_at":    "2026-08-01T10:00:00Z",
		"updated_at":    "2026-08-01T10:05:00Z",
	}

	require.True(t, Present(&buf, data, "session"))
	out := buf.String()
	assert.Contains(t, out, "Lifecycle")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "upstream quota exhausted")
	assert.NotContains(t, out, "approved by:", "absent fields are skipped")
}

func TestPresentNestedFieldPath(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"id":     "u-1",
		"email":  "kate@example.com",
		"role":   map[string]any{"id": "r-1", "name": "recruiter"},
		"status": "active",
	}

	require.True(t, Present(&buf, data, "user"))
	assert.Contains(t, buf.String(), "recruiter")
}

func TestPresentFallsBackWithoutSchema(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, Present(&buf, map[string]any{"id": "x"}, ""))
	assert.False(t, Present(&buf, map[string]any{"id": "x"}, "nope"))
	assert.False(t, Present(&buf, "scalar", "session"))
	assert.Empty(t, buf.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		format string
		want   string
	}{
		{"nil", nil, "", ""},
		{"bool true", true, "", "yes"},
		{"bool false", false, "", "no"},
		{"integral float", float64(37), "", "37"},
		{"fractional float", 2.5, "", "2.5"},
		{"plain string", "hello", "", "hello"},
		{"bad datetime left alone", "not-a-date", "datetime", "not-a-date"},
		{"list", []any{"a", "b"}, "", "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value, tt.format))
		})
	}
}
