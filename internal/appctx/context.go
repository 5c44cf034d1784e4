// Package appctx provides application context helpers.
package appctx

import (
	"context"
	"net/url"
	"os"

	"github.com/RK-HR-org/rsq/internal/api"
	"github.com/RK-HR-org/rsq/internal/auth"
	"github.com/RK-HR-org/rsq/internal/config"
	"github.com/RK-HR-org/rsq/internal/names"
	"github.com/RK-HR-org/rsq/internal/output"
	"github.com/RK-HR-org/rsq/internal/presenter"
	"github.com/RK-HR-org/rsq/internal/search"
)

// contextKey is a private type for context keys.
type contextKey string

const appKey contextKey = "app"

// App holds the shared application context for all commands.
type App struct {
	Config *config.Config
	Store  *auth.Store
	Auth   *auth.Manager
	API    *api.Client
	Search *search.Client
	Names  *names.Resolver
	Output *output.Writer

	// Flags holds the global flag values.
	Flags GlobalFlags
}

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	// Output format flags
	JSON    bool
	Quiet   bool
	IDsOnly bool
	Count   bool

	// Context flags
	Host string
	Team string

	// Behavior flags
	Verbose bool
}

// NewApp wires the credential store, transport, and output writer from the
// resolved configuration.
func NewApp(cfg *config.Config) *App {
	store := auth.NewStore(credentialsDir())
	origin := Origin(cfg.BaseURL)

	client := api.NewClient(cfg.BaseURL, auth.NewCredentialSource(store, origin))
	authMgr := auth.NewManager(store, origin, client)

	format := output.FormatAuto
	switch cfg.Format {
	case "json":
		format = output.FormatJSON
	case "text":
		format = output.FormatText
	case "quiet":
		format = output.FormatQuiet
	}

	return &App{
		Config: cfg,
		Store:  store,
		Auth:   authMgr,
		API:    client,
		Search: search.NewClient(client),
		Names:  names.NewResolver(client),
		Output: output.New(output.Options{
			Format:    format,
			Writer:    os.Stdout,
			Presenter: presenter.Present,
		}),
	}
}

// ApplyFlags applies global flag values to the app. Order matters: the most
// specific output modes win.
func (a *App) ApplyFlags() {
	var format output.Format
	switch {
	case a.Flags.IDsOnly:
		format = output.FormatIDs
	case a.Flags.Count:
		format = output.FormatCount
	case a.Flags.Quiet:
		format = output.FormatQuiet
	case a.Flags.JSON:
		format = output.FormatJSON
	default:
		format = output.FormatAuto
	}
	if format != output.FormatAuto {
		a.Output = output.New(output.Options{
			Format:    format,
			Writer:    os.Stdout,
			Presenter: presenter.Present,
		})
	}

	verbose := a.Flags.Verbose || os.Getenv("RSQ_DEBUG") != ""
	a.API.SetVerbose(verbose)
}

// TeamID resolves the team to act on: the --team flag wins over config.
func (a *App) TeamID() string {
	if a.Flags.Team != "" {
		return a.Flags.Team
	}
	return a.Config.TeamID
}

// OK outputs a success response.
func (a *App) OK(data any, opts ...output.ResponseOption) error {
	return a.Output.OK(data, opts...)
}

// Err outputs an error response.
func (a *App) Err(err error) error {
	return a.Output.Err(err)
}

// Origin reduces a base URL to the host key used for credential storage, so
// tokens survive path-level changes to the base URL.
func Origin(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

// credentialsDir is where the file-fallback credential store lives.
func credentialsDir() string {
	if dir := os.Getenv("RSQ_CONFIG_DIR"); dir != "" {
		return dir
	}
	return config.GlobalConfigDir()
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}
