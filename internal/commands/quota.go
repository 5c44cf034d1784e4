package commands

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/appctx"
	"github.com/RK-HR-org/rsq/internal/completion"
	"github.com/RK-HR-org/rsq/internal/dateparse"
	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewQuotaCmd creates the quota command group.
func NewQuotaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Inspect and manage search quotas",
	}

	cmd.AddCommand(
		newQuotaMeCmd(),
		newQuotaTeamCmd(),
		newQuotaTeamsCmd(),
		newQuotaRemainingCmd(),
		newQuotaHistoryCmd(),
		newQuotaLimitsCmd(),
	)

	return cmd
}

func newQuotaMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your quota usage across teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/me", nil)
			if err != nil {
				return err
			}
			var quota models.UserQuota
			if err := resp.UnmarshalData(&quota); err != nil {
				return err
			}

			return app.OK(quota, output.WithSummary(fmt.Sprintf(
				"%d requests in the last hour, %d in the last day",
				quota.UsageLastHour.RequestsTotal, quota.UsageLastDay.RequestsTotal)))
		},
	}
}

func newQuotaTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team [team-id]",
		Short: "Show a team's quota state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := teamArg(cmd, app, args)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/team/"+team, nil)
			if err != nil {
				return err
			}
			var quota models.TeamQuota
			if err := resp.UnmarshalData(&quota); err != nil {
				return err
			}

			return app.OK(quota, output.WithEntity("quota"))
		},
	}
}

func newQuotaTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Show quota state for every visible team",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/teams", nil)
			if err != nil {
				return err
			}
			var quotas []models.TeamQuota
			if err := resp.UnmarshalData(&quotas); err != nil {
				return err
			}

			return app.OK(quotas,
				output.WithEntity("quota"),
				output.WithSummary(countSummary("team", len(quotas), len(quotas))))
		},
	}
}

func newQuotaRemainingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remaining [team-id]",
		Short: "Show how much quota a team has left",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := teamArg(cmd, app, args)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/remaining/"+team, nil)
			if err != nil {
				return err
			}
			var remaining models.RemainingQuota
			if err := resp.UnmarshalData(&remaining); err != nil {
				return err
			}

			summary := "Quota available"
			if !remaining.CanMakeRequest {
				summary = "Quota exhausted"
			}
			return app.OK(remaining, output.WithSummary(summary))
		},
	}
}

func newQuotaHistoryCmd() *cobra.Command {
	var (
		windowType string
		dateFrom   string
		dateTo     string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded quota usage windows",
		Long:  "Show recorded quota usage windows. The global --team flag narrows the history to one team.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			q := url.Values{}
			if app.Flags.Team != "" {
				q.Set("team_id", app.Flags.Team)
			}
			if windowType != "" {
				if windowType != "hour" && windowType != "day" {
					return output.ErrUsage("--window must be 'hour' or 'day'")
				}
				q.Set("window_type", windowType)
			}
			if dateFrom != "" {
				q.Set("date_from", dateparse.Parse(dateFrom))
			}
			if dateTo != "" {
				q.Set("date_to", dateparse.Parse(dateTo))
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				q.Set("offset", strconv.Itoa(offset))
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/history", q)
			if err != nil {
				return err
			}
			var history struct {
				Items []models.QuotaHistoryEntry `json:"items"`
				Total int                        `json:"total"`
			}
			if err := resp.UnmarshalData(&history); err != nil {
				return err
			}

			return app.OK(history,
				output.WithSummary(countSummary("window", len(history.Items), history.Total)))
		},
	}

	cmd.Flags().StringVar(&windowType, "window", "", "Filter by window type: hour or day")
	_ = cmd.RegisterFlagCompletionFunc("window", completion.Windows())
	cmd.Flags().StringVar(&dateFrom, "from", "", "Earliest window date (YYYY-MM-DD or natural language like 'last week')")
	cmd.Flags().StringVar(&dateTo, "to", "", "Latest window date (YYYY-MM-DD or 'yesterday')")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newQuotaLimitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Manage team quota limits",
	}

	cmd.AddCommand(
		newQuotaLimitsListCmd(),
		newQuotaLimitsGetCmd(),
		newQuotaLimitsSetCmd(),
		newQuotaLimitsUnsetCmd(),
	)

	return cmd
}

func newQuotaLimitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/limits", nil)
			if err != nil {
				return err
			}
			var limits []models.QuotaLimits
			if err := resp.UnmarshalData(&limits); err != nil {
				return err
			}

			return app.OK(limits,
				output.WithSummary(countSummary("limit", len(limits), len(limits))))
		},
	}
}

func newQuotaLimitsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [team-id]",
		Short: "Show a team's limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := teamArg(cmd, app, args)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/quota/limits/"+team, nil)
			if err != nil {
				return err
			}
			var limits models.QuotaLimits
			if err := resp.UnmarshalData(&limits); err != nil {
				return err
			}

			return app.OK(limits)
		},
	}
}

func newQuotaLimitsSetCmd() *cobra.Command {
	var perHour, perDay int

	cmd := &cobra.Command{
		Use:   "set [team-id]",
		Short: "Set a team's limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := teamArg(cmd, app, args)
			if err != nil {
				return err
			}
			if perHour <= 0 || perDay <= 0 {
				return output.ErrUsage("--per-hour and --per-day must be positive")
			}

			resp, err := app.API.Put(cmd.Context(), "/v1/quota/limits/"+team, &models.QuotaLimitsUpdate{
				RequestsPerHour: perHour,
				RequestsPerDay:  perDay,
			})
			if err != nil {
				return err
			}
			var limits models.QuotaLimits
			if err := resp.UnmarshalData(&limits); err != nil {
				return err
			}

			return app.OK(limits, output.WithSummary(fmt.Sprintf(
				"Limits for team %s: %d/hour, %d/day", team, perHour, perDay)))
		},
	}

	cmd.Flags().IntVar(&perHour, "per-hour", 0, "Requests allowed per hour (required)")
	cmd.Flags().IntVar(&perDay, "per-day", 0, "Requests allowed per day (required)")
	_ = cmd.MarkFlagRequired("per-hour")
	_ = cmd.MarkFlagRequired("per-day")

	return cmd
}

func newQuotaLimitsUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset [team-id]",
		Short: "Remove a team's limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := teamArg(cmd, app, args)
			if err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), "/v1/quota/limits/"+team); err != nil {
				return err
			}

			return app.OK(map[string]string{"team_id": team, "status": "limits_removed"},
				output.WithSummary("Removed limits for team "+team))
		},
	}
}

// teamArg resolves a team from the positional argument, falling back to the
// configured team. Either may be a team ID or a team name.
func teamArg(cmd *cobra.Command, app *appctx.App, args []string) (string, error) {
	if len(args) > 0 {
		id, _, err := app.Names.ResolveTeam(cmd.Context(), args[0])
		return id, err
	}
	return requireTeam(cmd, app)
}
