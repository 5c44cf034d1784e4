package completion

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestPermissionTypesFiltersByPrefix(t *testing.T) {
	out, directive := PermissionTypes()(nil, nil, "manage_")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.NotEmpty(t, out)
	for _, v := range out {
		assert.Contains(t, v, "manage_")
	}
}

func TestModesCompleteAll(t *testing.T) {
	out, _ := Modes()(nil, nil, "")
	assert.ElementsMatch(t, []string{"resumes", "vacancies"}, out)
}

func TestWindows(t *testing.T) {
	out, _ := Windows()(nil, nil, "h")
	assert.Equal(t, []string{"hour"}, out)
}

func TestDictionaryNamesNoMatch(t *testing.T) {
	out, directive := DictionaryNames()(nil, nil, "zzz")
	assert.Empty(t, out)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
