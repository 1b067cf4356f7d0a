package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeCommand_RejectsMissingDir(t *testing.T) {
	_, _, err := runCommand(t, newServeCmd(), "serve", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
