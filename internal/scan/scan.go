package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/ozenlabs/ozenembed/internal/utils"
)

// DefaultPattern matches the audio formats the viewer can decode.
const DefaultPattern = "**/*.{wav,mp3,ogg,oga,flac,m4a,opus,aac,webm,aiff}"

// Scanner walks a directory tree for audio files. Matches honor the root's
// .gitignore and never descend into .git.
type Scanner struct {
	root    string
	pattern string
	ignore  *gitignore.GitIgnore
}

func New(root, pattern string) (*Scanner, error) {
	resolved, err := utils.ResolvePath(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	if !utils.DirExists(resolved) {
		return nil, fmt.Errorf("scan root %q is not a directory", root)
	}

	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	var ignore *gitignore.GitIgnore
	if ignoreFile := filepath.Join(resolved, ".gitignore"); utils.FileExists(ignoreFile) {
		ignore, err = gitignore.CompileIgnoreFile(ignoreFile)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", ignoreFile, err)
		}
	}

	return &Scanner{
		root:    resolved,
		pattern: pattern,
		ignore:  ignore,
	}, nil
}

// Root returns the resolved scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan returns root-relative forward slash paths of every matching audio
// file, sorted lexically.
func (s *Scanner) Scan() ([]string, error) {
	matches := make([]string, 0, 32)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || s.ignored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignored(rel) {
			return nil
		}

		ok, err := doublestar.Match(s.pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

func (s *Scanner) ignored(rel string) bool {
	return s.ignore != nil && s.ignore.MatchesPath(rel)
}
