// Package watcher implements drop-folder mode: background photos
// appearing in the input directory become thumbnails in the output
// directory, titled from their filename.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"thumbforge/common"
	"thumbforge/config"
	"thumbforge/logging"
	"thumbforge/thumbnail"
)

// debounceDelay coalesces the burst of events a single file copy emits.
const debounceDelay = 500 * time.Millisecond

// Thumbnailer produces a finished thumbnail file for a request.
type Thumbnailer interface {
	Generate(ctx context.Context, req thumbnail.Request, outPath string) error
}

// Notifier is told about each generated thumbnail.
type Notifier interface {
	ThumbnailReady(title, location string) error
}

// Event represents a processed drop-folder file
type Event struct {
	Type       EventType
	SourcePath string
	OutputPath string
}

// EventType represents the type of file event
type EventType int

const (
	EventGenerated EventType = iota
	EventFailed
	EventRemoved
)

// imageExtensions lists the background formats accepted from the drop
// folder.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Watcher monitors the drop folder for new background images
type Watcher struct {
	cfg      *config.Config
	thumb    Thumbnailer
	notifier Notifier
	watcher  *fsnotify.Watcher
	events   chan Event
	log      *logrus.Entry
}

// NewWatcher creates a new drop-folder watcher
func NewWatcher(cfg *config.Config, thumb Thumbnailer) (*Watcher, error) {
	if cfg.Watch.InputDir == "" || cfg.Watch.OutputDir == "" {
		return nil, fmt.Errorf("watch.input_dir and watch.output_dir are required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:     cfg,
		thumb:   thumb,
		watcher: fsWatcher,
		events:  make(chan Event, 100),
		log:     logging.WithFields(logging.Fields{"component": "watcher"}),
	}, nil
}

// SetNotifier sets the notifier for generated thumbnails
func (w *Watcher) SetNotifier(n Notifier) {
	w.notifier = n
}

// Start begins monitoring the input folder
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.cfg.Watch.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	if err := w.watcher.Add(w.cfg.Watch.InputDir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", w.cfg.Watch.InputDir, err)
	}
	w.log.Infof("Watching folder: %s", w.cfg.Watch.InputDir)

	go w.processEvents()

	return nil
}

// processEvents handles fsnotify events and converts them to our event type
func (w *Watcher) processEvents() {
	// Debounce timer per path to avoid processing rapid successive events
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only process image files
			if !imageExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}

			// Skip temp files
			if filepath.Base(event.Name)[0] == '.' {
				continue
			}

			if event.Op&fsnotify.Remove == fsnotify.Remove {
				w.events <- Event{Type: EventRemoved, SourcePath: event.Name}
				continue
			}
			if event.Op&fsnotify.Create != fsnotify.Create && event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}

			if timer, exists := debounce[event.Name]; exists {
				timer.Stop()
			}

			name := event.Name
			debounce[name] = time.AfterFunc(debounceDelay, func() {
				w.handleImage(name)
				delete(debounce, name)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("Watcher error: %v", err)
		}
	}
}

// handleImage generates a thumbnail for a dropped background image
func (w *Watcher) handleImage(path string) {
	title := TitleFromFilename(path)
	outPath := filepath.Join(w.cfg.Watch.OutputDir, w.outputName(path))

	w.log.Infof("New background image: %s (title %q)", path, title)

	req := thumbnail.Request{
		Title:          title,
		BackgroundPath: path,
	}
	if err := w.thumb.Generate(context.Background(), req, outPath); err != nil {
		w.log.Errorf("Failed to generate thumbnail for %s: %v", path, err)
		w.events <- Event{Type: EventFailed, SourcePath: path}
		return
	}

	w.log.Infof("Thumbnail written: %s", outPath)

	if w.notifier != nil {
		if err := w.notifier.ThumbnailReady(title, outPath); err != nil {
			w.log.Errorf("Failed to send notification: %v", err)
		}
	}

	w.events <- Event{Type: EventGenerated, SourcePath: path, OutputPath: outPath}
}

// outputName derives the thumbnail filename from the source image name
// and the configured watch format.
func (w *Watcher) outputName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	format := w.cfg.Watch.Format
	if !common.IsKnownFormat(format) {
		format = "png"
	}
	return common.NormalizeExtension(stem+"_thumb", format)
}

// TitleFromFilename turns "my-first_post.jpg" into "My First Post".
func TitleFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, word := range words {
		r := []rune(word)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Events returns the event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}
