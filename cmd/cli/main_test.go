package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"--help"})

	require.NoError(t, err, "help must exit cleanly")
	require.Contains(t, out.String(), "Usage:", "expected help text on the output buffer")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag")
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, nil)

	require.Error(t, err)
	require.Contains(t, err.Error(), "run profile or an image location")
}
