package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewRolesCmd creates the roles command group.
func NewRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Manage roles",
	}

	cmd.AddCommand(
		newRolesListCmd(),
		newRolesGetCmd(),
		newRolesCreateCmd(),
		newRolesUpdateCmd(),
		newRolesDeleteCmd(),
		newRolesPermissionsCmd(),
	)

	return cmd
}

func newRolesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/role", nil)
			if err != nil {
				return err
			}
			var roles []models.Role
			if err := resp.UnmarshalData(&roles); err != nil {
				return err
			}

			return app.OK(roles,
				output.WithEntity("role"),
				output.WithSummary(countSummary("role", len(roles), len(roles))))
		},
	}
}

func newRolesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <role-id>",
		Short: "Show a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/role/"+args[0], nil)
			if err != nil {
				return err
			}
			var role models.Role
			if err := resp.UnmarshalData(&role); err != nil {
				return err
			}

			return app.OK(role, output.WithEntity("role"))
		},
	}
}

func newRolesCreateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				return output.ErrUsage("--name is required")
			}

			resp, err := app.API.Post(cmd.Context(), "/v1/role", map[string]string{
				"name":        name,
				"description": description,
			})
			if err != nil {
				return err
			}
			var role models.Role
			if err := resp.UnmarshalData(&role); err != nil {
				return err
			}

			return app.OK(role,
				output.WithEntity("role"),
				output.WithSummary("Created role "+role.Name))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Role name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Role description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRolesUpdateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <role-id>",
		Short: "Update a role",
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

			resp, err := app.API.Patch(cmd.Context(), "/v1/role/"+args[0], body)
			if err != nil {
				return err
			}
			var role models.Role
			if err := resp.UnmarshalData(&role); err != nil {
				return err
			}

			return app.OK(role,
				output.WithEntity("role"),
				output.WithSummary("Updated role "+role.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newRolesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <role-id>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), "/v1/role/"+args[0]); err != nil {
				return err
			}

			return app.OK(map[string]string{"id": args[0], "status": "deleted"},
				output.WithSummary("Deleted role "+args[0]))
		},
	}
}

func newRolesPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Manage role permissions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <role-id>",
			Short: "List a role's permissions",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := requireApp(cmd)
				if err != nil {
					return err
				}

				resp, err := app.API.Get(cmd.Context(), "/v1/role/"+args[0]+"/permission", nil)
				if err != nil {
					return err
				}
				var perms models.RolePermissions
				if err := resp.UnmarshalData(&perms); err != nil {
					return err
				}

				return app.OK(perms,
					output.WithSummary(countSummary("permission", len(perms.Permissions), len(perms.Permissions))))
			},
		},
		newPermissionAddCmd("role", "/v1/role/"),
		newPermissionRemoveCmd("role", "/v1/role/"),
	)

	return cmd
}
