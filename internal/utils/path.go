package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	// Expand `~` to the user's home directory
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.New("failed to retrieve home directory")
		}
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// Resolve relative paths (.., .) and return an absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.Clean(absPath), nil
}

// RelativePath returns target expressed relative to baseDir, always with
// forward slashes so the result can drop straight into a URL. Both arguments
// are resolved with ResolvePath first; neither needs to exist on disk.
//
// When target sits outside baseDir the result climbs out with `..` segments
// up to the deepest common ancestor; joining the result back onto baseDir and
// cleaning it yields target again. Paths on different volumes share no
// ancestor, so every base segment becomes a `..` and the full target path,
// volume included, is appended.
func RelativePath(baseDir, target string) (string, error) {
	base, err := ResolvePath(baseDir)
	if err != nil {
		return "", err
	}
	tgt, err := ResolvePath(target)
	if err != nil {
		return "", err
	}

	baseVol := filepath.VolumeName(base)
	tgtVol := filepath.VolumeName(tgt)
	baseSegs := splitPathSegments(base[len(baseVol):])
	tgtSegs := splitPathSegments(tgt[len(tgtVol):])

	var up int
	var down []string
	if strings.EqualFold(baseVol, tgtVol) {
		common := 0
		for common < len(baseSegs) && common < len(tgtSegs) && baseSegs[common] == tgtSegs[common] {
			common++
		}
		up = len(baseSegs) - common
		down = tgtSegs[common:]
	} else {
		// No common ancestor across volumes. Every base segment becomes a
		// parent marker and the full target path is appended.
		up = len(baseSegs)
		down = append([]string{tgtVol}, tgtSegs...)
	}

	parts := make([]string, 0, up+len(down))
	for i := 0; i < up; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, down...)

	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, "/"), nil
}

func splitPathSegments(p string) []string {
	p = filepath.ToSlash(p)
	segs := make([]string, 0, 8)
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func DirExists(path string) bool {
	// check if the path is a directory
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	// check if the path is a file
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
