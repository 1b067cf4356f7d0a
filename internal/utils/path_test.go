package utils

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{
			name:      "empty path",
			input:     "",
			wantError: true,
		},
		{
			name:      "relative path",
			input:     "./test",
			wantError: false,
		},
		{
			name:      "absolute path",
			input:     "/tmp/test",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolvePath(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("ResolvePath(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if !tt.wantError && result == "" {
				t.Errorf("ResolvePath(%q) returned empty string", tt.input)
			}
		})
	}
}

func TestRelativePath(t *testing.T) {
	root := t.TempDir()
	join := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}

	tests := []struct {
		name    string
		baseDir string
		target  string
		want    string
	}{
		{
			name:    "same directory",
			baseDir: join("docs", "viewer"),
			target:  join("docs", "viewer", "test.wav"),
			want:    "test.wav",
		},
		{
			name:    "target one level up",
			baseDir: join("docs", "viewer"),
			target:  join("docs", "test.wav"),
			want:    "../test.wav",
		},
		{
			name:    "target nested below base",
			baseDir: join("docs"),
			target:  join("docs", "audio", "samples", "test.wav"),
			want:    "audio/samples/test.wav",
		},
		{
			name:    "sibling trees",
			baseDir: join("site", "viewer"),
			target:  join("data", "audio", "test.wav"),
			want:    "../../data/audio/test.wav",
		},
		{
			name:    "base equals target",
			baseDir: join("docs"),
			target:  join("docs"),
			want:    ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.baseDir, tt.target)
			if err != nil {
				t.Fatalf("RelativePath(%q, %q) error = %v", tt.baseDir, tt.target, err)
			}
			if got != tt.want {
				t.Errorf("RelativePath(%q, %q) = %q, want %q", tt.baseDir, tt.target, got, tt.want)
			}
		})
	}
}

func TestRelativePathUsesForwardSlashes(t *testing.T) {
	root := t.TempDir()
	got, err := RelativePath(filepath.Join(root, "a", "b"), filepath.Join(root, "c", "d", "e.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "\\") {
		t.Errorf("RelativePath returned %q, want forward slashes only", got)
	}
}

// Joining the result back onto the base directory must land on the target.
func TestRelativePathRoundTrip(t *testing.T) {
	root := t.TempDir()
	pairs := []struct {
		baseDir string
		target  string
	}{
		{filepath.Join(root, "docs"), filepath.Join(root, "docs", "a.wav")},
		{filepath.Join(root, "docs", "deep", "nested"), filepath.Join(root, "a.wav")},
		{filepath.Join(root, "x"), filepath.Join(root, "y", "z", "b.mp3")},
		{filepath.Join(root, "one", "two"), filepath.Join(root, "one", "two", "three", "c.ogg")},
	}

	for _, p := range pairs {
		rel, err := RelativePath(p.baseDir, p.target)
		if err != nil {
			t.Fatalf("RelativePath(%q, %q) error = %v", p.baseDir, p.target, err)
		}
		back := filepath.Clean(filepath.Join(p.baseDir, filepath.FromSlash(rel)))
		if back != p.target {
			t.Errorf("round trip %q + %q = %q, want %q", p.baseDir, rel, back, p.target)
		}
	}
}

func TestRelativePathDoesNotTouchDisk(t *testing.T) {
	// None of these paths exist; the resolver must still produce a result.
	got, err := RelativePath("/no/such/dir", "/no/such/audio/test.wav")
	if err != nil {
		t.Fatal(err)
	}
	if got != "../audio/test.wav" {
		t.Errorf("RelativePath = %q, want %q", got, "../audio/test.wav")
	}
}
