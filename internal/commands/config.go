package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/config"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewConfigCmd creates the config command for managing configuration.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage rsq configuration.

Configuration is loaded from multiple sources with the following precedence:
  flags > env > local > global > system > defaults

Config locations:
  - System: /etc/rsq/config.json
  - Global: ~/.config/rsq/config.json
  - Local:  .rsq/config.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigUnsetCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the current effective configuration with source information.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}

	configData := make(map[string]any)
	for key, value := range map[string]string{
		"base_url": app.Config.BaseURL,
		"team_id":  app.Config.TeamID,
		"format":   app.Config.Format,
	} {
		if value == "" {
			continue
		}
		source := app.Config.Sources[key]
		if source == "" {
			source = string(config.SourceDefault)
		}
		configData[key] = map[string]string{
			"value":  value,
			"source": source,
		}
	}

	return app.OK(configData, output.WithSummary("Effective configuration"))
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			value, err := configValue(app.Config, args[0])
			if err != nil {
				return err
			}

			return app.OK(map[string]string{args[0]: value}, output.WithSummary(value))
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a config value",
		Long:  "Write a config value to the global config file. Valid keys: base_url, team_id, format.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := setConfigValue(app.Config, key, value); err != nil {
				return err
			}
			if err := config.Save(app.Config); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			return app.OK(map[string]string{key: value},
				output.WithSummary(fmt.Sprintf("Set %s = %s", key, value)))
		},
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a persisted config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			if err := setConfigValue(app.Config, args[0], ""); err != nil {
				return err
			}
			if err := config.Save(app.Config); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			return app.OK(nil, output.WithSummary(fmt.Sprintf("Unset %s", args[0])))
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			global := filepath.Join(config.GlobalConfigDir(), "config.json")
			local := ""
			if dir, err := os.Getwd(); err == nil {
				local = filepath.Join(dir, ".rsq", "config.json")
			}

			return app.OK(map[string]string{
				"system": "/etc/rsq/config.json",
				"global": global,
				"local":  local,
			}, output.WithSummary(global))
		},
	}
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "base_url":
		return cfg.BaseURL, nil
	case "team_id":
		return cfg.TeamID, nil
	case "format":
		return cfg.Format, nil
	default:
		return "", output.ErrUsageHint(
			fmt.Sprintf("Unknown config key %q", key),
			"Valid keys: base_url, team_id, format")
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "base_url":
		if value != "" {
			value = config.NormalizeBaseURL(value)
		}
		cfg.BaseURL = value
	case "team_id":
		cfg.TeamID = value
	case "format":
		cfg.Format = value
	default:
		return output.ErrUsageHint(
			fmt.Sprintf("Unknown config key %q", key),
			"Valid keys: base_url, team_id, format")
	}
	return nil
}
