// Package completion provides tab completion for flags and arguments whose
// values are fixed enumerations. Nothing here touches the network, so
// completions stay fast even without a warm connection.
package completion

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/search"
)

// Dictionaries are the names accepted by the static dictionary endpoints.
var Dictionaries = []string{
	"user-statuses",
	"session-statuses",
	"search-modes",
	"areas",
	"professional-roles",
	"skills",
	"industries",
	"languages",
	"employers",
}

// SuggestKinds are the text suggestion endpoints.
var SuggestKinds = []string{
	"areas",
	"area-leaves",
	"positions",
	"vacancy-positions",
	"skills",
	"resume-search-keyword",
	"fields-of-study",
	"companies",
}

// PermissionTypes completes permission type arguments.
func PermissionTypes() cobra.CompletionFunc {
	return fixed(models.PermissionTypes)
}

// SessionStatuses completes session status values.
func SessionStatuses() cobra.CompletionFunc {
	return fixed(search.Statuses)
}

// Modes completes search mode values.
func Modes() cobra.CompletionFunc {
	return fixed([]string{search.ModeResumes, search.ModeVacancies})
}

// Windows completes quota window types.
func Windows() cobra.CompletionFunc {
	return fixed([]string{"hour", "day"})
}

// DictionaryNames completes static dictionary names.
func DictionaryNames() cobra.CompletionFunc {
	return fixed(Dictionaries)
}

// SuggestKindNames completes suggestion endpoint names.
func SuggestKindNames() cobra.CompletionFunc {
	return fixed(SuggestKinds)
}

func fixed(values []string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
