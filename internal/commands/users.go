package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewUsersCmd creates the users command group.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
	}

	cmd.AddCommand(
		newUsersListCmd(),
		newUsersGetCmd(),
		newUsersUpdateCmd(),
		newUsersDeleteCmd(),
	)

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/user", nil)
			if err != nil {
				return err
			}
			var users []models.User
			if err := resp.UnmarshalData(&users); err != nil {
				return err
			}

			return app.OK(users,
				output.WithEntity("user"),
				output.WithSummary(countSummary("user", len(users), len(users))))
		},
	}
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			resp, err := app.API.Get(cmd.Context(), "/v1/user/"+args[0], nil)
			if err != nil {
				return err
			}
			var user models.User
			if err := resp.UnmarshalData(&user); err != nil {
				return err
			}

			return app.OK(user, output.WithEntity("user"))
		},
	}
}

func newUsersUpdateCmd() *cobra.Command {
	var (
		email     string
		firstName string
		lastName  string
		roleID    string
		status    string
		teamIDs   []string
	)

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			req := &models.UserUpdate{}
			changed := false
			setIf := func(flag string, dst **string, val string) {
				if cmd.Flags().Changed(flag) {
					v := val
					*dst = &v
					changed = true
				}
			}
			setIf("email", &req.Email, email)
			setIf("first-name", &req.FirstName, firstName)
			setIf("last-name", &req.LastName, lastName)
			setIf("role", &req.RoleID, roleID)
			setIf("status", &req.Status, status)
			if cmd.Flags().Changed("teams") {
				req.TeamIDs = teamIDs
				changed = true
			}
			if !changed {
				return output.ErrUsage("Nothing to update")
			}

			resp, err := app.API.Patch(cmd.Context(), "/v1/user/"+args[0], req)
			if err != nil {
				return err
			}
			var user models.User
			if err := resp.UnmarshalData(&user); err != nil {
				return err
			}

			return app.OK(user,
				output.WithEntity("user"),
				output.WithSummary("Updated user "+user.Email))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "New last name")
	cmd.Flags().StringVar(&roleID, "role", "", "New role ID")
	cmd.Flags().StringVar(&status, "status", "", "New status: active, inactive, or blocked")
	cmd.Flags().StringSliceVar(&teamIDs, "teams", nil, "Replacement team IDs")

	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), "/v1/user/"+args[0]); err != nil {
				return err
			}

			return app.OK(map[string]string{"id": args[0], "status": "deleted"},
				output.WithSummary("Deleted user "+args[0]))
		},
	}
}
