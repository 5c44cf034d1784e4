package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/hostutil"
	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Log in and out of the recruiting platform and inspect the current session.",
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
		newAuthRefreshCmd(),
		newAuthTokenCmd(),
		newAuthRegisterCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if email == "" {
				return output.ErrUsage("--email is required")
			}
			// Passwords never travel over plain http to a remote host.
			if err := hostutil.RequireSecureURL(app.API.BaseURL()); err != nil {
				return output.ErrUsageHint(err.Error(), "Use an https:// base URL or a localhost backend")
			}
			pass, err := promptPassword(password)
			if err != nil {
				return err
			}

			user, err := app.Auth.Login(cmd.Context(), email, pass)
			if err != nil {
				return err
			}

			return app.OK(user,
				output.WithEntity("user"),
				output.WithSummary("Logged in as "+user.DisplayName()),
				output.WithMeta("origin", app.Auth.Origin()),
			)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (falls back to RSQ_PASSWORD, then a prompt)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}

			return app.OK(map[string]string{"status": "logged_out"},
				output.WithSummary("Logged out"))
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Verify the stored session against the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			user, err := app.Auth.CheckAuth(cmd.Context())
			if err != nil {
				return err
			}

			return app.OK(user,
				output.WithEntity("user"),
				output.WithSummary("Logged in as "+user.DisplayName()),
				output.WithMeta("origin", app.Auth.Origin()),
				output.WithMeta("keyring", app.Store.UsingKeyring()),
			)
		},
	}
}

func newAuthRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rotate the token pair now",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if err := app.Auth.Refresh(cmd.Context()); err != nil {
				return err
			}

			return app.OK(map[string]string{"status": "refreshed"},
				output.WithSummary("Session refreshed"))
		},
	}
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the access token for use in scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			token := app.Auth.AccessToken()
			if token == "" {
				return output.ErrAuth("Not logged in")
			}

			return app.OK(map[string]string{"access_token": token},
				output.WithSummary(token))
		},
	}
}

func newAuthRegisterCmd() *cobra.Command {
	var req models.UserCreate
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if req.Email == "" || req.RoleID == "" {
				return output.ErrUsage("--email and --role are required")
			}
			req.Password, err = promptPassword(password)
			if err != nil {
				return err
			}

			user, err := app.Auth.Register(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return app.OK(user,
				output.WithEntity("user"),
				output.WithSummary("Registered "+user.Email))
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (falls back to RSQ_PASSWORD, then a prompt)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.RoleID, "role", "", "Role ID (required)")
	cmd.Flags().StringSliceVar(&req.TeamIDs, "teams", nil, "Team IDs to join")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

// NewMeCmd creates the shortcut for the current user's profile.
func NewMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			user, err := app.Auth.CheckAuth(cmd.Context())
			if err != nil {
				return err
			}

			return app.OK(user, output.WithEntity("user"))
		},
	}
}
