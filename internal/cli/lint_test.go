package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/internal/cli"
)

func TestLintCommand_FlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	tests := []struct {
		flag string
		want string
	}{
		{flag: "rule-format", want: "name"},
		{flag: "format", want: "text"},
		{flag: "flavor", want: "commonmark"},
		{flag: "syntax", want: "auto"},
		{flag: "max-digits", want: "2"},
		{flag: "fix-passes", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := lintCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.want, flag.DefValue)
		})
	}

	formatFlag := lintCmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Contains(t, formatFlag.Usage, "summary")
	assert.NotContains(t, formatFlag.Usage, "table")
}
