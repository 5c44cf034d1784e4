// Package cli builds the rsq root command and wires the application context.
package cli

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/appctx"
	"github.com/RK-HR-org/rsq/internal/commands"
	"github.com/RK-HR-org/rsq/internal/config"
	"github.com/RK-HR-org/rsq/internal/output"
	"github.com/RK-HR-org/rsq/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags appctx.GlobalFlags

	cmd := &cobra.Command{
		Use:           "rsq",
		Short:         "Command-line interface for the resume search backend",
		Long:          "rsq manages search sessions, teams, quotas, and the linked HeadHunter account from the terminal.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(config.FlagOverrides{
				Host: flags.Host,
				Team: flags.Team,
			})
			if err != nil {
				return err
			}

			app := appctx.NewApp(cfg)
			app.Flags = flags
			app.ApplyFlags()

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	// Output format flags
	cmd.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Output as JSON")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Output data only, no envelope")
	cmd.PersistentFlags().BoolVar(&flags.IDsOnly, "ids-only", false, "Output only IDs")
	cmd.PersistentFlags().BoolVar(&flags.Count, "count", false, "Output only count")

	// Context flags
	cmd.PersistentFlags().StringVarP(&flags.Team, "team", "t", "", "Team ID to act on")
	cmd.PersistentFlags().StringVar(&flags.Host, "host", "", "Backend host (e.g., localhost:8080, hr.example.com)")

	// Behavior flags
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log requests to stderr")

	AddCommands(cmd)

	return cmd
}

// AddCommands registers every subcommand on the root.
func AddCommands(cmd *cobra.Command) {
	cmd.AddCommand(commands.NewAuthCmd())
	cmd.AddCommand(commands.NewMeCmd())
	cmd.AddCommand(commands.NewSessionsCmd())
	cmd.AddCommand(commands.NewUsersCmd())
	cmd.AddCommand(commands.NewTeamsCmd())
	cmd.AddCommand(commands.NewRolesCmd())
	cmd.AddCommand(commands.NewQuotaCmd())
	cmd.AddCommand(commands.NewStaticCmd())
	cmd.AddCommand(commands.NewHHCmd())
	cmd.AddCommand(commands.NewConfigCmd())
	cmd.AddCommand(commands.NewAPICmd())
	cmd.AddCommand(commands.NewCommandsCmd())
}

// Execute runs the root command and exits with the error's mapped code.
func Execute() {
	cmd := NewRootCmd()

	executedCmd, err := cmd.ExecuteC()
	if err == nil {
		return
	}

	err = transformCobraError(err)
	apiErr := output.AsError(err)

	if app := appctx.FromContext(executedCmd.Context()); app != nil {
		_ = app.Err(err)
		os.Exit(apiErr.ExitCode())
	}

	// App not available, e.g. config load failed before PersistentPreRunE
	// finished. Emit on a bare writer honoring the format flags.
	pf := cmd.PersistentFlags()
	format := output.FormatAuto
	quiet, _ := pf.GetBool("quiet")
	idsOnly, _ := pf.GetBool("ids-only")
	count, _ := pf.GetBool("count")
	jsonFlag, _ := pf.GetBool("json")

	switch {
	case idsOnly:
		format = output.FormatIDs
	case count:
		format = output.FormatCount
	case quiet:
		format = output.FormatQuiet
	case jsonFlag:
		format = output.FormatJSON
	}

	writer := output.New(output.Options{
		Format: format,
		Writer: os.Stdout,
	})
	_ = writer.Err(err)

	os.Exit(apiErr.ExitCode())
}

// transformCobraError rewrites Cobra's default error messages into the
// structured usage errors the rest of the CLI emits.
func transformCobraError(err error) error {
	msg := err.Error()

	if strings.HasPrefix(msg, "flag needs an argument: ") {
		flag := strings.TrimPrefix(msg, "flag needs an argument: ")
		return output.ErrUsage(flag + " requires a value")
	}

	if strings.HasPrefix(msg, "unknown flag: ") {
		flag := strings.TrimPrefix(msg, "unknown flag: ")
		return output.ErrUsage("Unknown option: " + flag)
	}

	if strings.HasPrefix(msg, "unknown shorthand flag: ") {
		re := regexp.MustCompile(`unknown shorthand flag: '.' in (-\w)`)
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			return output.ErrUsage("Unknown option: " + matches[1])
		}
	}

	if strings.Contains(msg, "invalid argument") {
		return output.ErrUsage(msg)
	}

	if strings.Contains(msg, "arg(s), received") {
		return output.ErrUsage("Wrong number of arguments: " + msg)
	}

	if strings.HasPrefix(msg, "required flag(s) ") {
		re := regexp.MustCompile(`required flag\(s\) "(\S+)" not set`)
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			return output.ErrUsage("--" + matches[1] + " is required")
		}
	}

	return err
}
