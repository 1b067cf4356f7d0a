package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozenlabs/ozenembed/internal/snippet"
)

func TestEmbedCommand_PrintsIframe(t *testing.T) {
	root := t.TempDir()
	audio := filepath.Join(root, "audio", "track.wav")
	viewer := filepath.Join(root, "docs", "viewer.html")
	writeTestAudio(t, audio)

	stdout, _, err := runCommand(t, newEmbedCmd(), "embed", audio, "--viewer-url", viewer)
	require.NoError(t, err)

	assert.Contains(t, stdout, "<iframe")
	assert.Contains(t, stdout, "</iframe>")
	assert.Contains(t, stdout, "audio=..%2Faudio%2Ftrack.wav")
	assert.Contains(t, stdout, "overlays=pitch,formants")
	assert.Contains(t, stdout, `height="600"`)
	assert.Contains(t, stdout, `width="100%"`)
}

func TestEmbedCommand_CustomFlags(t *testing.T) {
	root := t.TempDir()
	audio := filepath.Join(root, "track.wav")
	viewer := filepath.Join(root, "viewer.html")
	writeTestAudio(t, audio)

	stdout, _, err := runCommand(t, newEmbedCmd(), "embed", audio,
		"--viewer-url", viewer,
		"--overlays", " pitch , intensity ",
		"--height", "400",
		"--width", "800")
	require.NoError(t, err)

	assert.Contains(t, stdout, "overlays=pitch,intensity")
	assert.Contains(t, stdout, `height="400"`)
	assert.Contains(t, stdout, `width="800"`)
}

func TestEmbedCommand_JSONOutput(t *testing.T) {
	root := t.TempDir()
	audio := filepath.Join(root, "audio", "track.wav")
	viewer := filepath.Join(root, "docs", "viewer.html")
	writeTestAudio(t, audio)

	stdout, _, err := runCommand(t, newEmbedCmd(), "embed", audio, "--viewer-url", viewer, "--json")
	require.NoError(t, err)

	var s snippet.Snippet
	require.NoError(t, jsonUnmarshal([]byte(stdout), &s))
	assert.Equal(t, "../audio/track.wav", s.AudioRef)
	assert.Contains(t, s.HTML, "<iframe")
}

func TestEmbedCommand_MissingAudio(t *testing.T) {
	viewer := filepath.Join(t.TempDir(), "viewer.html")

	stdout, stderr, err := runCommand(t, newEmbedCmd(), "embed",
		filepath.Join(t.TempDir(), "nope.wav"), "--viewer-url", viewer)
	require.Error(t, err)
	require.ErrorIs(t, err, snippet.ErrAudioNotFound)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "audio file not found")
	assert.NotContains(t, stderr, "Usage:")
}

func TestEmbedCommand_UnknownFlag(t *testing.T) {
	stdout, stderr, err := runCommand(t, newEmbedCmd(), "embed", "x.wav", "--nope")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, stderr, "unknown flag")
	// cobra prints usage on flag errors
	assert.Contains(t, stdout, "Usage:")
}
