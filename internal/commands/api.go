package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/api"
	"github.com/RK-HR-org/rsq/internal/output"
)

// NewAPICmd creates the api command for raw API access.
func NewAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api <verb> <path>",
		Short: "Raw API access",
		Long:  "Make raw requests to any backend endpoint. Useful for operations not covered by dedicated commands.",
	}

	cmd.AddCommand(
		newAPIGetCmd(),
		newAPIPostCmd(),
		newAPIPutCmd(),
		newAPIPatchCmd(),
		newAPIDeleteCmd(),
	)

	return cmd
}

func newAPIGetCmd() *cobra.Command {
	var jqExpr string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET request to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			path, query := parsePath(args[0])
			resp, err := app.API.Get(cmd.Context(), path, query)
			if err != nil {
				return err
			}

			return respondRaw(cmd, resp.Data, jqExpr, apiSummary(resp.Data))
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "Filter the response through a jq expression")

	return cmd
}

func newAPIPostCmd() *cobra.Command {
	return newAPIBodyCmd("post", "POST")
}

func newAPIPutCmd() *cobra.Command {
	return newAPIBodyCmd("put", "PUT")
}

func newAPIPatchCmd() *cobra.Command {
	return newAPIBodyCmd("patch", "PATCH")
}

// newAPIBodyCmd builds the post/put/patch variants, which differ only
// in the method they dispatch to.
func newAPIBodyCmd(use, method string) *cobra.Command {
	var (
		data   string
		jqExpr string
	)

	cmd := &cobra.Command{
		Use:   use + " <path>",
		Short: method + " request to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			var body any
			if data != "" {
				raw, err := readJSONArg(data)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &body); err != nil {
					return output.ErrUsageHint("Invalid JSON data", fmt.Sprintf("JSON parse error: %v", err))
				}
			}

			path, _ := parsePath(args[0])

			var resp *api.Response
			switch method {
			case "POST":
				resp, err = app.API.Post(cmd.Context(), path, body)
			case "PUT":
				resp, err = app.API.Put(cmd.Context(), path, body)
			case "PATCH":
				resp, err = app.API.Patch(cmd.Context(), path, body)
			}
			if err != nil {
				return err
			}

			summary := fmt.Sprintf("%s %s: %s", method, path, apiSummary(resp.Data))
			return respondRaw(cmd, resp.Data, jqExpr, summary)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body (inline, @file, or @- for stdin)")
	cmd.Flags().StringVar(&jqExpr, "jq", "", "Filter the response through a jq expression")

	return cmd
}

func newAPIDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "DELETE request to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(cmd)
			if err != nil {
				return err
			}

			path, _ := parsePath(args[0])
			resp, err := app.API.Delete(cmd.Context(), path)
			if err != nil {
				return err
			}

			data := resp.Data
			if len(data) == 0 {
				data = []byte("{}")
			}

			return respondRaw(cmd, data, "", fmt.Sprintf("DELETE %s", path))
		},
	}
}

// respondRaw emits the raw payload, optionally filtered through jq.
func respondRaw(cmd *cobra.Command, data json.RawMessage, jqExpr, summary string) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}

	if jqExpr == "" {
		return app.OK(data, output.WithSummary(summary))
	}

	filtered, err := applyJQ(data, jqExpr)
	if err != nil {
		return err
	}
	return app.OK(filtered, output.WithSummary(summary))
}

// applyJQ runs a jq expression over a JSON payload. A single result is
// returned as-is; multiple results come back as an array.
func applyJQ(data json.RawMessage, expr string) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, output.ErrUsageHint("Invalid jq expression", err.Error())
	}

	var input any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("decoding response for jq: %w", err)
		}
	}

	var results []any
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, output.ErrUsageHint("jq evaluation failed", err.Error())
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// parsePath normalizes a raw endpoint argument. Full URLs are reduced
// to their path, a missing leading slash is added, and an inline query
// string is split off.
func parsePath(input string) (string, url.Values) {
	urlPattern := regexp.MustCompile(`^https?://[^/]+(/.*)`)
	if matches := urlPattern.FindStringSubmatch(input); len(matches) > 1 {
		input = matches[1]
	}

	var query url.Values
	if path, rawQuery, found := strings.Cut(input, "?"); found {
		input = path
		if parsed, err := url.ParseQuery(rawQuery); err == nil {
			query = parsed
		}
	}

	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}

	return input, query
}

// apiSummary generates a short summary from a raw response payload.
func apiSummary(data []byte) string {
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		return fmt.Sprintf("%d items", len(arr))
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return "API response"
	}

	if items, ok := obj["items"].([]any); ok {
		return fmt.Sprintf("%d items", len(items))
	}
	for _, key := range []string{"name", "email", "id"} {
		if v, ok := obj[key].(string); ok && v != "" {
			if len(v) > 50 {
				v = v[:47] + "..."
			}
			return v
		}
	}
	return "API response"
}
