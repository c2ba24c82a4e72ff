package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/blockwright/cmd/blockwright"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{
	"import", "list", "export", "heading", "append", "inject", "fingerprint",
	"components", "faq", "steps", "warnings", "resolve",
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesHeadingArguments(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"heading", "42", "Old title", "New title", "--level", "3"})
	require.NoError(t, err)

	assert.Equal(t, "42", cli.Heading.ID)
	assert.Equal(t, "Old title", cli.Heading.Old)
	assert.Equal(t, "New title", cli.Heading.New)
	assert.Equal(t, 3, cli.Heading.Level)
}
