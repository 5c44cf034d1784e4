package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/output"
	"github.com/RK-HR-org/rsq/internal/search"
)

// newSessionsItemsCmd creates the items subgroup under sessions.
func newSessionsItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse a session's results",
	}

	cmd.AddCommand(
		newItemsListCmd(),
		newItemsGetCmd(),
		newItemsUpdateCmd(),
	)

	return cmd
}

func newItemsListCmd() *cobra.Command {
	var (
		limit         int
		offset        int
		includeHidden bool
	)

	cmd := &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			list, err := app.Search.Items(cmd.Context(), args[0], search.ItemOpts{
				Limit:         limit,
				Offset:        offset,
				IncludeHidden: includeHidden,
			})
			if err != nil {
				return err
			}

			return app.OK(list,
				output.WithEntity("item"),
				output.WithSummary(countSummary("item", len(list.Items), list.Total)))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Include hidden items")

	return cmd
}

func newItemsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id> <item-id>",
		Short: "Show one item with cached full data",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			item, err := app.Search.Item(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			return app.OK(item, output.WithEntity("item"))
		},
	}
}

func newItemsUpdateCmd() *cobra.Command {
	var favorite, unfavorite, hide, unhide bool

	cmd := &cobra.Command{
		Use:   "update <session-id> <item-id>",
		Short: "Toggle an item's favorite or hidden flags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if favorite && unfavorite {
				return output.ErrUsage("--favorite and --unfavorite are mutually exclusive")
			}
			if hide && unhide {
				return output.ErrUsage("--hide and --unhide are mutually exclusive")
			}

			req := &search.ItemUpdate{}
			if favorite || unfavorite {
				v := favorite
				req.IsFavorite = &v
			}
			if hide || unhide {
				v := hide
				req.IsHidden = &v
			}
			if req.IsFavorite == nil && req.IsHidden == nil {
				return output.ErrUsage("Nothing to update; pass --favorite, --unfavorite, --hide, or --unhide")
			}

			item, err := app.Search.UpdateItem(cmd.Context(), args[0], args[1], req)
			if err != nil {
				return err
			}

			return app.OK(item,
				output.WithEntity("item"),
				output.WithSummary("Updated item "+item.ID))
		},
	}

	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark as favorite")
	cmd.Flags().BoolVar(&unfavorite, "unfavorite", false, "Clear the favorite mark")
	cmd.Flags().BoolVar(&hide, "hide", false, "Hide the item")
	cmd.Flags().BoolVar(&unhide, "unhide", false, "Unhide the item")

	return cmd
}
