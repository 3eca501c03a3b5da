package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/packr/internal/config"
	"git.home.luguber.info/inful/packr/internal/styles"
)

// styleWatcher rebuilds styles when the SCSS input's directory changes.
// It watches the directory rather than the file: editors replace files on
// save, which would drop a file-level watch.
type styleWatcher struct {
	step      *styles.Step
	cfg       *config.Config
	configDir string
	watcher   *fsnotify.Watcher
	debounce  time.Duration
}

func newStyleWatcher(step *styles.Step, cfg *config.Config, configDir string) (*styleWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	inputDir := filepath.Dir(filepath.Join(configDir, cfg.ScssInput))
	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, err
	}

	slog.Info("Watching styles", "dir", inputDir)
	return &styleWatcher{
		step:      step,
		cfg:       cfg,
		configDir: configDir,
		watcher:   watcher,
		debounce:  300 * time.Millisecond,
	}, nil
}

// run processes events until ctx is cancelled. Rebuild failures are logged
// and the watch continues; a broken edit should not kill the session.
func (sw *styleWatcher) run(ctx context.Context) {
	defer sw.watcher.Close()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if isStyleEvent(event) {
				timer.Reset(sw.debounce)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Style watcher error", "error", err)
		case <-timer.C:
			slog.Info("Style change detected, rebuilding")
			if err := sw.step.Build(sw.cfg, sw.configDir); err != nil {
				slog.Error("Style rebuild failed", "error", err)
			}
		}
	}
}

func isStyleEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".scss", ".sass", ".css":
		return true
	}
	return false
}
