package commands

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/completion"
	"github.com/RK-HR-org/rsq/internal/output"
	"github.com/RK-HR-org/rsq/internal/search"
)

// NewSessionsCmd creates the search session command group.
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Manage search sessions",
		Long:    "Create, enrich, approve, and execute search sessions, and browse their results.",
	}

	cmd.AddCommand(
		newSessionsCreateCmd(),
		newSessionsListCmd(),
		newSessionsGetCmd(),
		newSessionsEnrichCmd(),
		newSessionsApproveCmd(),
		newSessionsExecuteCmd(),
		newSessionsDeleteCmd(),
		newSessionsItemsCmd(),
	)

	return cmd
}

func newSessionsCreateCmd() *cobra.Command {
	var (
		mode       string
		searchType string
		queryArg   string
		filtersArg string
		positive   string
		negative   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a search session",
		Long:  "Create a draft session. With --positive or --negative prompts the backend enriches it immediately.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			team, err := requireTeam(cmd, app)
			if err != nil {
				return err
			}
			if mode != search.ModeResumes && mode != search.ModeVacancies {
				return output.ErrUsage("--mode must be 'resumes' or 'vacancies'")
			}

			query, err := readJSONOrText(queryArg)
			if err != nil {
				return err
			}
			filters, err := readJSONArg(filtersArg)
			if err != nil {
				return err
			}

			req := &search.CreateRequest{
				TeamID:     team,
				Mode:       mode,
				SearchType: searchType,
				QueryRaw:   query,
				Filters:    filters,
			}
			if positive != "" || negative != "" {
				req.Prompts = &search.Prompts{Positive: positive, Negative: negative}
			}

			out, err := app.Search.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out.Enrich != nil {
				return app.OK(out.Enrich,
					output.WithSummary("Created and enriched session "+out.SessionID()))
			}
			return app.OK(out.Session,
				output.WithEntity("session"),
				output.WithSummary("Created session "+out.SessionID()))
		},
	}

	cmd.Flags().StringVar(&mode, "mode", search.ModeResumes, "Search mode: resumes or vacancies")
	_ = cmd.RegisterFlagCompletionFunc("mode", completion.Modes())
	cmd.Flags().StringVar(&searchType, "type", "", "Search type: simple or advanced")
	cmd.Flags().StringVar(&queryArg, "query", "", "Search query: plain text or JSON (inline, @file, or @- for stdin)")
	cmd.Flags().StringVar(&filtersArg, "filters", "", "Advanced filters JSON (inline, @file, or @- for stdin)")
	cmd.Flags().StringVar(&positive, "positive", "", "Positive enrichment prompt")
	cmd.Flags().StringVar(&negative, "negative", "", "Negative enrichment prompt")

	return cmd
}

func newSessionsListCmd() *cobra.Command {
	var (
		limit    int
		offset   int
		teamWide bool
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List search sessions",
		Long:  "List your sessions, or the whole team's with --team-wide.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if status != "" && !slices.Contains(search.Statuses, status) {
				return output.ErrUsageHint("Unknown status: "+status,
					"Valid statuses: "+strings.Join(search.Statuses, ", "))
			}

			page := search.PageOpts{Limit: limit, Offset: offset}
			var list *search.SessionList
			if teamWide {
				team, err := requireTeam(cmd, app)
				if err != nil {
					return err
				}
				list, err = app.Search.ListTeam(cmd.Context(), team, page)
				if err != nil {
					return err
				}
			} else {
				list, err = app.Search.ListMine(cmd.Context(), page)
				if err != nil {
					return err
				}
			}

			if status != "" {
				kept := make([]search.Session, 0, len(list.Items))
				for _, s := range list.Items {
					if s.Status == status {
						kept = append(kept, s)
					}
				}
				list.Items = kept
			}

			return app.OK(list,
				output.WithEntity("session"),
				output.WithSummary(countSummary("session", len(list.Items), list.Total)))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	cmd.Flags().BoolVar(&teamWide, "team-wide", false, "List the team's sessions instead of yours")
	cmd.Flags().StringVar(&status, "status", "", "Only show sessions in this status")
	_ = cmd.RegisterFlagCompletionFunc("status", completion.SessionStatuses())

	return cmd
}

func newSessionsGetCmd() *cobra.Command {
	var withResults bool

	cmd := &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			session, err := app.Search.Get(cmd.Context(), args[0], withResults)
			if err != nil {
				return err
			}

			return app.OK(session,
				output.WithEntity("session"),
				output.WithSummary(sessionSummary(session)))
		},
	}

	cmd.Flags().BoolVar(&withResults, "with-results", false, "Include stored result snapshots")

	return cmd
}

func newSessionsEnrichCmd() *cobra.Command {
	var positive, negative, filtersArg string

	cmd := &cobra.Command{
		Use:   "enrich <session-id>",
		Short: "Enrich a draft session with AI prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			filters, err := readJSONArg(filtersArg)
			if err != nil {
				return err
			}

			out, err := app.Search.Enrich(cmd.Context(), args[0], &search.EnrichRequest{
				Prompts: search.Prompts{Positive: positive, Negative: negative},
				Filters: filters,
			})
			if err != nil {
				return err
			}

			summary := "Enriched session " + out.SessionID
			if len(out.Diff.Warnings) > 0 {
				summary += fmt.Sprintf(" (%d warnings)", len(out.Diff.Warnings))
			}
			return app.OK(out, output.WithSummary(summary))
		},
	}

	cmd.Flags().StringVar(&positive, "positive", "", "Positive enrichment prompt")
	cmd.Flags().StringVar(&negative, "negative", "", "Negative enrichment prompt")
	cmd.Flags().StringVar(&filtersArg, "filters", "", "Filters JSON (inline, @file, or @- for stdin)")

	return cmd
}

func newSessionsApproveCmd() *cobra.Command {
	var requestArg string

	cmd := &cobra.Command{
		Use:   "approve <session-id>",
		Short: "Approve a session for execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			hhRequest, err := readJSONArg(requestArg)
			if err != nil {
				return err
			}

			session, err := app.Search.Approve(cmd.Context(), args[0], &search.ApproveRequest{
				HHRequest: hhRequest,
			})
			if err != nil {
				return lifecycleHint(cmd, args[0], err, search.CanApprove, "enrich it first")
			}

			return app.OK(session,
				output.WithEntity("session"),
				output.WithSummary("Approved session "+session.ID))
		},
	}

	cmd.Flags().StringVar(&requestArg, "request", "", "Exact upstream request JSON to pin (inline, @file, or @- for stdin)")

	return cmd
}

func newSessionsExecuteCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "execute <session-id>",
		Short: "Run an approved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			out, err := app.Search.Execute(cmd.Context(), args[0], &search.ExecuteRequest{Page: page})
			if err != nil {
				return lifecycleHint(cmd, args[0], err, search.CanExecute, "approve it first")
			}

			return app.OK(out, output.WithSummary(executeSummary(out)))
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Upstream result page")

	return cmd
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if err := app.Search.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			return app.OK(map[string]string{"id": args[0], "status": "deleted"},
				output.WithSummary("Deleted session "+args[0]))
		},
	}
}

// lifecycleHint re-phrases a rejected approve or execute call by checking the
// session's current status. The rejection stays authoritative; the lookup only
// adds a hint naming the missing step.
func lifecycleHint(cmd *cobra.Command, sessionID string, callErr error, ready func(string) bool, step string) error {
	apiErr := output.AsError(callErr)
	if apiErr.HTTPStatus != http.StatusConflict && apiErr.Code != output.CodeValidation {
		return callErr
	}
	app, err := requireApp(cmd)
	if err != nil {
		return callErr
	}
	session, err := app.Search.Get(cmd.Context(), sessionID, false)
	if err != nil || ready(session.Status) {
		return callErr
	}
	apiErr.Hint = fmt.Sprintf("Session is %s; %s", session.Status, step)
	return apiErr
}

func sessionSummary(s *search.Session) string {
	summary := fmt.Sprintf("Session %s (%s, %s)", s.ID, s.Mode, s.Status)
	if s.Status == search.StatusFailed && s.ErrorMessage != "" {
		summary += ": " + s.ErrorMessage
	}
	return summary
}

func executeSummary(out *search.ExecuteResponse) string {
	if out.Found == nil {
		return fmt.Sprintf("Fetched %d items", len(out.Items))
	}
	summary := fmt.Sprintf("Found %d, fetched %d items", *out.Found, len(out.Items))
	if out.Page != nil && out.Pages != nil {
		summary += fmt.Sprintf(" (page %d of %d)", *out.Page+1, *out.Pages)
	}
	return summary
}
