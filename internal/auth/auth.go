package auth

import (
	"context"
	"fmt"

	"github.com/RK-HR-org/rsq/internal/api"
	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// CredentialSource adapts a Store to the transport's token interface for a
// single origin. Token writes preserve the stored user ID.
type credentialSource struct {
	store  *Store
	origin string
}

// NewCredentialSource returns an api.CredentialSource backed by the store.
func NewCredentialSource(store *Store, origin string) api.CredentialSource {
	return &credentialSource{store: store, origin: origin}
}

func (c *credentialSource) Tokens() (string, string) {
	creds, err := c.store.Load(c.origin)
	if err != nil || creds == nil {
		return "", ""
	}
	return creds.AccessToken, creds.RefreshToken
}

func (c *credentialSource) SetTokens(access, refresh string) error {
	userID := ""
	if prev, err := c.store.Load(c.origin); err == nil && prev != nil {
		userID = prev.UserID
	}
	return c.store.Save(c.origin, &Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       userID,
	})
}

func (c *credentialSource) ClearTokens() error {
	return c.store.Delete(c.origin)
}

// Manager owns the login/logout lifecycle for one origin.
type Manager struct {
	store  *Store
	origin string
	client *api.Client
}

// NewManager creates a session manager bound to a transport.
func NewManager(store *Store, origin string, client *api.Client) *Manager {
	return &Manager{store: store, origin: origin, client: client}
}

// Origin returns the server origin this manager's credentials are keyed by.
func (m *Manager) Origin() string {
	return m.origin
}

// AccessToken returns the stored access token, or empty when logged out.
func (m *Manager) AccessToken() string {
	creds, err := m.store.Load(m.origin)
	if err != nil || creds == nil {
		return ""
	}
	return creds.AccessToken
}

// Refresh rotates the token pair immediately instead of waiting for a 401.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.client.ForceRefresh(ctx)
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair and fetches the profile.
// The pair is only kept if the profile fetch succeeds, so a saved access
// token always implies a usable session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := m.client.Post(ctx, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if e := output.AsError(err); e.HTTPStatus == 401 || e.HTTPStatus == 403 {
			return nil, output.ErrCredentials("Invalid email or password")
		}
		return nil, err
	}

	var tokens loginResponse
	if err := resp.UnmarshalData(&tokens); err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, output.ErrAPI(200, "login response missing access token")
	}

	if err := m.store.Save(m.origin, &Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}); err != nil {
		return nil, fmt.Errorf("saving credentials: %w", err)
	}

	user, err := m.fetchProfile(ctx)
	if err != nil {
		_ = m.store.Delete(m.origin)
		return nil, fmt.Errorf("fetching profile after login: %w", err)
	}

	_ = m.store.Save(m.origin, &Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		UserID:       user.ID,
	})
	return user, nil
}

// Logout revokes the refresh token server-side when possible, then clears
// local credentials unconditionally.
func (m *Manager) Logout(ctx context.Context) error {
	if creds, err := m.store.Load(m.origin); err == nil && creds != nil && creds.RefreshToken != "" {
		// Best effort: the server may already consider the session dead.
		_, _ = m.client.Post(ctx, "/v1/auth/logout", map[string]string{
			"refresh_token": creds.RefreshToken,
		})
	}
	return m.store.Delete(m.origin)
}

// CheckAuth verifies the stored session against the server. A stale access
// token is refreshed by the transport; if that fails too, local state is
// already cleared and an auth error is returned.
func (m *Manager) CheckAuth(ctx context.Context) (*models.User, error) {
	creds, err := m.store.Load(m.origin)
	if err != nil || creds == nil || creds.AccessToken == "" {
		return nil, output.ErrAuth("Not logged in")
	}
	user, err := m.fetchProfile(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsAuthenticated reports whether an access token is stored locally. It does
// not verify the token against the server.
func (m *Manager) IsAuthenticated() bool {
	creds, err := m.store.Load(m.origin)
	return err == nil && creds != nil && creds.AccessToken != ""
}

func (m *Manager) fetchProfile(ctx context.Context) (*models.User, error) {
	resp, err := m.client.Get(ctx, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := resp.UnmarshalData(&user); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &user, nil
}

// Register creates a new account via /v1/auth/register.
func (m *Manager) Register(ctx context.Context, req *models.UserCreate) (*models.User, error) {
	resp, err := m.client.Post(ctx, "/v1/auth/register", req)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := resp.UnmarshalData(&user); err != nil {
		return nil, fmt.Errorf("parsing register response: %w", err)
	}
	return &user, nil
}
