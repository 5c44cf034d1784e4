// Package commands implements the CLI commands.
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/appctx"
	"github.com/RK-HR-org/rsq/internal/output"
)

// requireApp fetches the App from the command context.
func requireApp(cmd *cobra.Command) (*appctx.App, error) {
	app := appctx.FromContext(cmd.Context())
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// requireTeam resolves the team to act on or fails with a usage hint.
// The value may be a team ID or a team name.
func requireTeam(cmd *cobra.Command, app *appctx.App) (string, error) {
	team := app.TeamID()
	if team == "" {
		return "", output.ErrUsageHint("No team specified", "Pass --team or set team_id in the config")
	}
	id, _, err := app.Names.ResolveTeam(cmd.Context(), team)
	if err != nil {
		return "", err
	}
	return id, nil
}

// readJSONArg parses an inline JSON string or, with an @-prefix, a file.
// "@-" reads from stdin.
func readJSONArg(input string) (json.RawMessage, error) {
	if input == "" {
		return nil, nil
	}

	data := []byte(input)
	if strings.HasPrefix(input, "@") {
		name := input[1:]
		var err error
		if name == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, output.ErrUsageHint("Cannot read JSON input", err.Error())
		}
	}

	if !json.Valid(data) {
		return nil, output.ErrUsage("Input is not valid JSON")
	}
	return json.RawMessage(data), nil
}

// firstArgCompletion applies a completion function to the first positional
// argument only.
func firstArgCompletion(fn cobra.CompletionFunc) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return fn(cmd, args, toComplete)
	}
}

// readJSONOrText is readJSONArg for inputs that may also be plain text.
// Inline input that does not parse as JSON is encoded as a JSON string.
func readJSONOrText(input string) (json.RawMessage, error) {
	if input != "" && !strings.HasPrefix(input, "@") && !json.Valid([]byte(input)) {
		return json.Marshal(input)
	}
	return readJSONArg(input)
}

// promptPassword resolves the password from flag, environment, or stdin.
func promptPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("RSQ_PASSWORD"); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", output.ErrUsageHint("No password provided", "Pass --password or set RSQ_PASSWORD")
	}
	return strings.TrimSpace(line), nil
}

// countSummary phrases a paginated list result.
func countSummary(noun string, shown, total int) string {
	if total > shown {
		return fmt.Sprintf("%d of %d %s", shown, total, plural(noun, total))
	}
	return fmt.Sprintf("%d %s", shown, plural(noun, shown))
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
