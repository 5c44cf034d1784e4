package names

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RK-HR-org/rsq/internal/api"
	"github.com/RK-HR-org/rsq/internal/output"
)

type staticCreds struct{}

func (staticCreds) Tokens() (string, string)    { return "tok", "ref" }
func (staticCreds) SetTokens(a, r string) error { return nil }
func (staticCreds) ClearTokens() error          { return nil }

func newResolver(t *testing.T, teams string) (*Resolver, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/team", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(teams))
	}))
	t.Cleanup(srv.Close)

	return NewResolver(api.NewClient(srv.URL, staticCreds{})), &calls
}

const teamList = `[
	{"id":"6a1f0a70-9c2b-4c39-8f0e-0d6f6f3f9e10","name":"Search"},
	{"id":"bb7e2d44-1234-4c39-8f0e-0d6f6f3f9e11","name":"search ops"},
	{"id":"cc8f3e55-5678-4c39-8f0e-0d6f6f3f9e12","name":"Recruiting"}
]`

func TestResolveTeamUUIDPassthrough(t *testing.T) {
	r, calls := newResolver(t, teamList)

	id, name, err := r.ResolveTeam(context.Background(), "6a1f0a70-9c2b-4c39-8f0e-0d6f6f3f9e10")
	require.NoError(t, err)
	assert.Equal(t, "6a1f0a70-9c2b-4c39-8f0e-0d6f6f3f9e10", id)
	assert.Empty(t, name)
	assert.Zero(t, *calls, "UUID input must not hit the network")
}

func TestResolveTeamExactName(t *testing.T) {
	r, _ := newResolver(t, teamList)

	id, name, err := r.ResolveTeam(context.Background(), "Search")
	require.NoError(t, err)
	assert.Equal(t, "6a1f0a70-9c2b-4c39-8f0e-0d6f6f3f9e10", id)
	assert.Equal(t, "Search", name)
}

func TestResolveTeamCaseInsensitive(t *testing.T) {
	r, _ := newResolver(t, teamList)

	id, _, err := r.ResolveTeam(context.Background(), "recruiting")
	require.NoError(t, err)
	assert.Equal(t, "cc8f3e55-5678-4c39-8f0e-0d6f6f3f9e12", id)
}

func TestResolveTeamUniquePartial(t *testing.T) {
	r, _ := newResolver(t, teamList)

	id, _, err := r.ResolveTeam(context.Background(), "recruit")
	require.NoError(t, err)
	assert.Equal(t, "cc8f3e55-5678-4c39-8f0e-0d6f6f3f9e12", id)
}

func TestResolveTeamAmbiguous(t *testing.T) {
	r, _ := newResolver(t, teamList)

	_, _, err := r.ResolveTeam(context.Background(), "sear")
	apiErr := output.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, output.CodeUsage, apiErr.Code)
	assert.Contains(t, apiErr.Hint, "Search")
	assert.Contains(t, apiErr.Hint, "search ops")
}

func TestResolveTeamNotFound(t *testing.T) {
	r, _ := newResolver(t, teamList)

	_, _, err := r.ResolveTeam(context.Background(), "Finance")
	apiErr := output.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, output.CodeNotFound, apiErr.Code)
}

func TestResolveTeamCachesList(t *testing.T) {
	r, calls := newResolver(t, teamList)

	_, _, err := r.ResolveTeam(context.Background(), "Search")
	require.NoError(t, err)
	_, _, err = r.ResolveTeam(context.Background(), "Recruiting")
	require.NoError(t, err)

	assert.Equal(t, 1, *calls)

	r.ClearCache()
	_, _, err = r.ResolveTeam(context.Background(), "Search")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}
