package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/pkg/lint"
)

func TestRulesCommand_Flags(t *testing.T) {
	cmd := newRulesCommand()
	assert.NotNil(t, cmd.Flags().Lookup("rule-format"))
	assert.NotNil(t, cmd.Flags().Lookup("tag"))
}

func TestSelectRules(t *testing.T) {
	t.Parallel()

	all, err := selectRules(lint.DefaultRegistry, nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 10)

	numerals, err := selectRules(lint.DefaultRegistry, nil, "numerals")
	require.NoError(t, err)
	require.Len(t, numerals, 2)
	assert.Equal(t, "NS009", numerals[0].ID())
	assert.Equal(t, "NS010", numerals[1].ID())

	single, err := selectRules(lint.DefaultRegistry, []string{"appropriate_use_of_choonpu"}, "")
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "NS007", single[0].ID())

	_, err = selectRules(lint.DefaultRegistry, []string{"MD001"}, "")
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, err = selectRules(lint.DefaultRegistry, nil, "headings")
	assert.Equal(t, ExitUsage, ExitCode(err))
}
