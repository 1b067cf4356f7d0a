package utils

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"
)

// Formats the viewer is known to decode. Types are pinned so generated markup
// does not drift with the host OS mime database.
var audioContentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".opus": "audio/opus",
	".aac":  "audio/aac",
	".webm": "audio/webm",
	".aiff": "audio/aiff",
	".aif":  "audio/aiff",
}

// AudioContentType returns the MIME type for an audio file path. Unknown
// extensions fall back to the OS mime database, then to audio/wav.
func AudioContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); strings.HasPrefix(ct, "audio/") {
		return ct
	}
	return "audio/wav"
}

// AudioExtensions returns the known audio file extensions, sorted, with
// leading dots.
func AudioExtensions() []string {
	exts := make([]string, 0, len(audioContentTypes))
	for ext := range audioContentTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
