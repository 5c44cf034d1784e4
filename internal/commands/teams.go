package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewTeamsCmd creates the teams command group.
func NewTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Manage teams",
	}

	cmd.AddCommand(
		newTeamsListCmd(),
		newTeamsGetCmd(),
		newTeamsCreateCmd(),
		newTeamsUpdateCmd(),
		newTeamsDeleteCmd(),
		newTeamsPermissionsCmd(),
	)

	return cmd
}

func newTeamsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/team", nil)
			if err != nil {
				return err
			}
			var teams []models.Team
			if err := resp.UnmarshalData(&teams); err != nil {
				return err
			}

			return app.OK(teams,
				output.WithEntity("team"),
				output.WithSummary(countSummary("team", len(teams), len(teams))))
		},
	}
}

func newTeamsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <team-id>",
		Short: "Show a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/team/"+args[0], nil)
			if err != nil {
				return err
			}
			var team models.Team
			if err := resp.UnmarshalData(&team); err != nil {
				return err
			}

			return app.OK(team, output.WithEntity("team"))
		},
	}
}

func newTeamsCreateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				return output.ErrUsage("--name is required")
			}

			resp, err := app.API.Post(cmd.Context(), "/v1/team", map[string]string{
				"name":        name,
				"description": description,
			})
			if err != nil {
				return err
			}
			var team models.Team
			if err := resp.UnmarshalData(&team); err != nil {
				return err
			}

			return app.OK(team,
				output.WithEntity("team"),
				output.WithSummary("Created team "+team.Name))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Team description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamsUpdateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <team-id>",
		Short: "Update a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			body := map[string]string{}
			if cmd.Flags().Changed("name") {
				body["name"] = name
			}
			if cmd.Flags().Changed("description") {
				body["description"] = description
			}
			if len(body) == 0 {
				return output.ErrUsage("Nothing to update; pass --name or --description")
			}

			resp, err := app.API.Patch(cmd.Context(), "/v1/team/"+args[0], body)
			if err != nil {
				return err
			}
			var team models.Team
			if err := resp.UnmarshalData(&team); err != nil {
				return err
			}

			return app.OK(team,
				output.WithEntity("team"),
				output.WithSummary("Updated team "+team.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newTeamsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <team-id>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), "/v1/team/"+args[0]); err != nil {
				return err
			}

			return app.OK(map[string]string{"id": args[0], "status": "deleted"},
				output.WithSummary("Deleted team "+args[0]))
		},
	}
}

func newTeamsPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Manage team permissions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <team-id>",
			Short: "List a team's permissions",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := requireApp(cmd)
				if err != nil {
					return err
				}

				resp, err := app.API.Get(cmd.Context(), "/v1/team/"+args[0]+"/permission", nil)
				if err != nil {
					return err
				}
				var perms models.TeamPermissions
				if err := resp.UnmarshalData(&perms); err != nil {
					return err
				}

				return app.OK(perms,
					output.WithSummary(countSummary("permission", len(perms.Permissions), len(perms.Permissions))))
			},
		},
		newPermissionAddCmd("team", "/v1/team/"),
		newPermissionRemoveCmd("team", "/v1/team/"),
	)

	return cmd
}
