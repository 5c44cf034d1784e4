package commands

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/completion"
	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

// newPermissionAddCmd grants a permission type on a role or team.
func newPermissionAddCmd(noun, basePath string) *cobra.Command {
	return &cobra.Command{
		Use:               "add <" + noun + "-id> <permission-type>",
		Short:             "Grant a permission to a " + noun,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: permissionTypeCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if err := validatePermissionType(args[1]); err != nil {
				return err
			}

			_, err = app.API.Post(cmd.Context(), basePath+args[0]+"/permission", map[string]string{
				"permission_type": args[1],
			})
			if err != nil {
				return err
			}

			return app.OK(map[string]string{noun + "_id": args[0], "permission_type": args[1]},
				output.WithSummary("Granted "+args[1]))
		},
	}
}

// newPermissionRemoveCmd revokes a permission type from a role or team.
func newPermissionRemoveCmd(noun, basePath string) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <" + noun + "-id> <permission-type>",
		Short:             "Revoke a permission from a " + noun,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: permissionTypeCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}
			if err := validatePermissionType(args[1]); err != nil {
				return err
			}

			if _, err := app.API.Delete(cmd.Context(), basePath+args[0]+"/permission/"+args[1]); err != nil {
				return err
			}

			return app.OK(map[string]string{noun + "_id": args[0], "permission_type": args[1]},
				output.WithSummary("Revoked "+args[1]))
		},
	}
}

// permissionTypeCompletion completes the second positional argument.
func permissionTypeCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completion.PermissionTypes()(cmd, args, toComplete)
}

func validatePermissionType(v string) error {
	if slices.Contains(models.PermissionTypes, v) {
		return nil
	}
	return output.ErrUsageHint(
		"Unknown permission type "+v,
		"One of: "+strings.Join(models.PermissionTypes, ", "),
	)
}
