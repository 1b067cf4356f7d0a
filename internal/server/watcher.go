package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/rjeczalik/notify"
)

const (
	eventBufferSize        = 64
	defaultDebounceTimeout = 200 * time.Millisecond
)

// FileWatcher watches a directory tree and coalesces change bursts, so a save
// that touches several files triggers a single callback.
type FileWatcher struct {
	watchDir string
	events   chan notify.EventInfo
	debounce time.Duration
}

func NewFileWatcher(watchDir string) *FileWatcher {
	return &FileWatcher{
		watchDir: watchDir,
		events:   make(chan notify.EventInfo, eventBufferSize),
		debounce: defaultDebounceTimeout,
	}
}

// SetDebounce sets the quiet period required before onChange fires.
func (fw *FileWatcher) SetDebounce(d time.Duration) {
	fw.debounce = d
}

// Run watches until ctx is done, invoking onChange once per quiet period with
// the path of the most recent event. Events under .git are dropped.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	slog.Info("file watcher start", "dir", fw.watchDir)
	defer slog.Info("file watcher stop")

	recursivePath := fw.watchDir + "/..."
	if err := notify.Watch(recursivePath, fw.events, notify.Write|notify.Create|notify.Remove|notify.Rename); err != nil {
		return fmt.Errorf("watch %s: %w", fw.watchDir, err)
	}
	defer notify.Stop(fw.events)

	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var lastPath string
	pending := false

	for {
		select {
		case ev := <-fw.events:
			if strings.Contains(filepath.ToSlash(ev.Path()), "/.git/") {
				continue
			}
			lastPath = ev.Path()
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(fw.debounce)
			pending = true

		case <-timer.C:
			if pending {
				pending = false
				onChange(lastPath)
			}

		case <-ctx.Done():
			return nil
		}
	}
}
