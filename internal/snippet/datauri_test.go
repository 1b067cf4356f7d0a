package snippet

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	root := t.TempDir()
	audio := writeAudio(t, filepath.Join(root, "test.wav"), 32)

	dataURL, size, err := DataURL(audio)
	require.NoError(t, err)

	assert.Equal(t, int64(32), size)
	require.True(t, strings.HasPrefix(dataURL, "data:audio/wav;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:audio/wav;base64,"))
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestDataURLContentTypeFromExtension(t *testing.T) {
	root := t.TempDir()
	audio := writeAudio(t, filepath.Join(root, "test.mp3"), 8)

	dataURL, _, err := DataURL(audio)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:audio/mpeg;base64,"))
}

func TestDataURLMissingFile(t *testing.T) {
	_, _, err := DataURL(filepath.Join(t.TempDir(), "nope.wav"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAudioNotFound)
}

func TestBuildDataURI(t *testing.T) {
	root := t.TempDir()
	audio := writeAudio(t, filepath.Join(root, "clip.wav"), 64)

	snip, size, err := BuildDataURI(audio, Options{ViewerURL: "viewer.html", Overlays: "pitch"})
	require.NoError(t, err)

	assert.Equal(t, int64(64), size)
	assert.True(t, strings.HasPrefix(snip.AudioRef, "data:audio/wav;base64,"))
	// base64 payloads contain +, / and =; all must be escaped in the src.
	assert.True(t, strings.HasPrefix(snip.Src, "viewer.html?audio=data%3Aaudio%2Fwav%3Bbase64%2C"))
	assert.Contains(t, snip.Src, "overlays=pitch")
	assert.Contains(t, snip.HTML, `height="600"`)
}

func TestDataURLSoftLimit(t *testing.T) {
	// Advisory threshold stays at 1.5MB.
	assert.Equal(t, int64(1572864), int64(DataURLSoftLimit))
}
