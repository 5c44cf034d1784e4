package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RK-HR-org/rsq/internal/output"
)

func TestRootRegistersGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"json", "quiet", "ids-only", "count", "team", "host", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"auth", "me", "sessions", "users", "teams", "roles", "quota", "static", "hh", "config", "api", "commands"} {
		assert.True(t, names[want], "subcommand %s not registered", want)
	}
}

func TestTransformCobraError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMsg  string
		wantCode string
	}{
		{
			name:     "missing flag argument",
			input:    "flag needs an argument: --email",
			wantMsg:  "--email requires a value",
			wantCode: output.CodeUsage,
		},
		{
			name:     "unknown flag",
			input:    "unknown flag: --bogus",
			wantMsg:  "Unknown option: --bogus",
			wantCode: output.CodeUsage,
		},
		{
			name:     "unknown shorthand",
			input:    "unknown shorthand flag: 'x' in -x",
			wantMsg:  "Unknown option: -x",
			wantCode: output.CodeUsage,
		},
		{
			name:     "required flag not set",
			input:    `required flag(s) "email" not set`,
			wantMsg:  "--email is required",
			wantCode: output.CodeUsage,
		},
		{
			name:     "wrong arg count",
			input:    "accepts 1 arg(s), received 0",
			wantCode: output.CodeUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transformCobraError(assertableError(tt.input))
			apiErr := output.AsError(err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apiErr.Message)
			}
		})
	}
}

func TestTransformCobraErrorPassesThroughOthers(t *testing.T) {
	orig := assertableError("connection reset")
	assert.Equal(t, orig, transformCobraError(orig))
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
