package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewHHCmd creates the HeadHunter account command group.
func NewHHCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hh",
		Short: "Manage the linked HeadHunter account",
	}

	cmd.AddCommand(
		newHHStatusCmd(),
		newHHConnectCmd(),
		newHHRefreshCmd(),
		newHHBalanceCmd(),
		newHHDisconnectCmd(),
	)

	return cmd
}

func newHHStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show HeadHunter connection state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/hh/status", nil)
			if err != nil {
				return err
			}

			var status models.HHStatus
			if err := resp.UnmarshalData(&status); err != nil {
				return err
			}

			summary := "HeadHunter account not connected"
			if status.Connected {
				summary = "HeadHunter account connected"
				if status.ExpiresAt != "" {
					summary += ", token expires " + status.ExpiresAt
				}
			}

			return app.OK(status, output.WithSummary(summary))
		},
	}
}

func newHHConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "connect",
		Aliases: []string{"url"},
		Short:   "Get the OAuth URL to link a HeadHunter account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/hh/oauth/url", nil)
			if err != nil {
				return err
			}

			var authURL models.HHAuthURL
			if err := resp.UnmarshalData(&authURL); err != nil {
				return err
			}

			return app.OK(authURL, output.WithSummary("Open this URL in a browser to authorize: "+authURL.AuthURL))
		},
	}
}

func newHHRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the stored HeadHunter token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Post(cmd.Context(), "/v1/hh/oauth/refresh", nil)
			if err != nil {
				return err
			}

			return app.OK(resp.Data, output.WithSummary("HeadHunter token refreshed"))
		},
	}
}

func newHHBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show remaining HeadHunter API allowance",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/hh/balance", nil)
			if err != nil {
				return err
			}

			var balance models.HHBalance
			if err := resp.UnmarshalData(&balance); err != nil {
				return err
			}

			return app.OK(balance, output.WithSummary(fmt.Sprintf("Account balance: %.2f RUB", balance.Actual)))
		},
	}
}

func newHHDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Unlink the HeadHunter account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), "/v1/hh/disconnect"); err != nil {
				return err
			}

			return app.OK(nil, output.WithSummary("HeadHunter account disconnected"))
		},
	}
}
