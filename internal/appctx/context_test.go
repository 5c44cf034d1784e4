package appctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RK-HR-org/rsq/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("RSQ_NO_KEYRING", "1")
	t.Setenv("RSQ_CONFIG_DIR", t.TempDir())
	cfg := config.Default()
	cfg.BaseURL = "https://hr.example.com/api"
	return NewApp(cfg)
}

func TestNewAppWiring(t *testing.T) {
	app := newTestApp(t)

	require.NotNil(t, app.Auth)
	require.NotNil(t, app.API)
	require.NotNil(t, app.Search)
	require.NotNil(t, app.Names)
	require.NotNil(t, app.Output)
	assert.Equal(t, "https://hr.example.com/api", app.API.BaseURL())
	assert.Equal(t, "hr.example.com", app.Auth.Origin())
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://hr.example.com/api", "hr.example.com"},
		{"http://localhost:8080/api", "localhost:8080"},
		{"https://hr.example.com", "hr.example.com"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Origin(tt.in))
		})
	}
}

func TestTeamIDPrecedence(t *testing.T) {
	app := newTestApp(t)
	app.Config.TeamID = "from-config"
	assert.Equal(t, "from-config", app.TeamID())

	app.Flags.Team = "from-flag"
	assert.Equal(t, "from-flag", app.TeamID())
}

func TestContextRoundTrip(t *testing.T) {
	app := newTestApp(t)
	ctx := WithApp(context.Background(), app)
	assert.Same(t, app, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
