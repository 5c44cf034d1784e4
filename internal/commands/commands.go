package commands

import (
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/output"
)

// CommandInfo describes a CLI command.
type CommandInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Actions     []string `json:"actions,omitempty"`
}

// CommandCategory groups commands by category.
type CommandCategory struct {
	Name     string        `json:"name"`
	Commands []CommandInfo `json:"commands"`
}

// commandCategories returns all command categories for the catalog.
func commandCategories() []CommandCategory {
	return []CommandCategory{
		{
			Name: "Search",
			Commands: []CommandInfo{
				{Name: "sessions", Category: "search", Description: "Manage search sessions", Actions: []string{"create", "list", "get", "enrich", "approve", "execute", "delete", "items"}},
				{Name: "static", Category: "search", Description: "Browse reference dictionaries", Actions: []string{"list", "get", "suggest"}},
			},
		},
		{
			Name: "Organization",
			Commands: []CommandInfo{
				{Name: "users", Category: "organization", Description: "Manage users", Actions: []string{"list", "get", "update", "delete"}},
				{Name: "teams", Category: "organization", Description: "Manage teams", Actions: []string{"list", "get", "create", "update", "delete", "permissions"}},
				{Name: "roles", Category: "organization", Description: "Manage roles", Actions: []string{"list", "get", "create", "update", "delete", "permissions"}},
				{Name: "quota", Category: "organization", Description: "Inspect and configure quotas", Actions: []string{"me", "team", "teams", "remaining", "history", "limits"}},
			},
		},
		{
			Name: "Accounts",
			Commands: []CommandInfo{
				{Name: "auth", Category: "accounts", Description: "Authenticate with the backend", Actions: []string{"login", "logout", "status", "refresh", "token", "register"}},
				{Name: "me", Category: "accounts", Description: "Show current user profile"},
				{Name: "hh", Category: "accounts", Description: "Manage the linked HeadHunter account", Actions: []string{"status", "connect", "refresh", "balance", "disconnect"}},
			},
		},
		{
			Name: "Utilities",
			Commands: []CommandInfo{
				{Name: "config", Category: "utilities", Description: "Manage configuration", Actions: []string{"show", "get", "set", "unset", "path"}},
				{Name: "api", Category: "utilities", Description: "Raw API access", Actions: []string{"get", "post", "put", "patch", "delete"}},
				{Name: "commands", Category: "utilities", Description: "List all commands"},
				{Name: "completion", Category: "utilities", Description: "Generate shell completions"},
				{Name: "help", Category: "utilities", Description: "Show help"},
				{Name: "version", Category: "utilities", Description: "Show version"},
			},
		},
	}
}

// Catalog returns the full command catalog.
func Catalog() []CommandCategory {
	return commandCategories()
}

// CatalogCommandNames returns all command names from the catalog.
// Used by tests to verify the catalog matches registered commands.
func CatalogCommandNames() []string {
	categories := commandCategories()
	total := 0
	for _, cat := range categories {
		total += len(cat.Commands)
	}
	names := make([]string, 0, total)
	for _, cat := range categories {
		for _, c := range cat.Commands {
			names = append(names, c.Name)
		}
	}
	return names
}

// NewCommandsCmd creates the commands listing command.
func NewCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Aliases: []string{"cmds"},
		Short:   "List all available commands",
		Long:    "List all available rsq commands organized by category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			return app.OK(commandCategories(), output.WithSummary("All available rsq commands"))
		},
	}
}
