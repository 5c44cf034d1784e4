package commands

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/completion"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewStaticCmd creates the static dictionary command group.
func NewStaticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "static",
		Short: "Browse reference dictionaries",
		Long:  "Fetch reference dictionaries (areas, skills, session statuses and so on) and text suggestions.",
	}

	cmd.AddCommand(
		newStaticListCmd(),
		newStaticGetCmd(),
		newStaticSuggestCmd(),
	)

	return cmd
}

func newStaticListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch all dictionaries at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/static", nil)
			if err != nil {
				return err
			}

			return app.OK(resp.Data)
		},
	}
}

func newStaticGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <dictionary>",
		Short:             "Fetch one dictionary",
		Long:              "Fetch one dictionary by name, for example: areas, skills, industries, languages, employers, user-statuses, session-statuses, search-modes, professional-roles.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: firstArgCompletion(completion.DictionaryNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/static/"+args[0], nil)
			if err != nil {
				return err
			}

			return app.OK(resp.Data)
		},
	}
}

func newStaticSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "suggest <dictionary> <text>",
		Short:             "Get suggestions for a text prefix",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: firstArgCompletion(completion.SuggestKindNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if args[1] == "" {
				return output.ErrUsage("Suggestion text must not be empty")
			}

			q := url.Values{}
			q.Set("text", args[1])
			resp, err := app.API.Get(cmd.Context(), "/v1/static/suggest/"+args[0], q)
			if err != nil {
				return err
			}

			return app.OK(resp.Data)
		},
	}
}
