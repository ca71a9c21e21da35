package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"thumbforge/config"
	"thumbforge/thumbnail"
)

// fakeThumbnailer records requests and touches the output file.
type fakeThumbnailer struct {
	mu       sync.Mutex
	requests []thumbnail.Request
}

func (f *fakeThumbnailer) Generate(ctx context.Context, req thumbnail.Request, outPath string) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return os.WriteFile(outPath, []byte("thumb"), 0644)
}

type fakeNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (f *fakeNotifier) ThumbnailReady(title, location string) error {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()
	return nil
}

func testWatchConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Watch.InputDir = filepath.Join(dir, "in")
	cfg.Watch.OutputDir = filepath.Join(dir, "out")
	if err := os.MkdirAll(cfg.Watch.InputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	return cfg
}

func TestWatcherGeneratesThumbnailForDroppedImage(t *testing.T) {
	cfg := testWatchConfig(t)
	thumb := &fakeThumbnailer{}
	notifier := &fakeNotifier{}

	w, err := NewWatcher(cfg, thumb)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.SetNotifier(notifier)

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	src := filepath.Join(cfg.Watch.InputDir, "my-first_post.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("Failed to drop file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Type != EventGenerated {
			t.Fatalf("Expected EventGenerated, got %v", event.Type)
		}
		if event.SourcePath != src {
			t.Errorf("SourcePath = %s, want %s", event.SourcePath, src)
		}
		want := filepath.Join(cfg.Watch.OutputDir, "my-first_post_thumb.png")
		if event.OutputPath != want {
			t.Errorf("OutputPath = %s, want %s", event.OutputPath, want)
		}
		if _, err := os.Stat(event.OutputPath); err != nil {
			t.Errorf("Output file not written: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for generated event")
	}

	thumb.mu.Lock()
	defer thumb.mu.Unlock()
	if len(thumb.requests) != 1 {
		t.Fatalf("Expected 1 generate call, got %d", len(thumb.requests))
	}
	if thumb.requests[0].Title != "My First Post" {
		t.Errorf("Title = %q, want %q", thumb.requests[0].Title, "My First Post")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.titles) != 1 || notifier.titles[0] != "My First Post" {
		t.Errorf("Notifier got %v", notifier.titles)
	}
}

func TestWatcherIgnoresNonImageFiles(t *testing.T) {
	cfg := testWatchConfig(t)
	thumb := &fakeThumbnailer{}

	w, err := NewWatcher(cfg, thumb)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	for _, name := range []string{"notes.txt", ".hidden.png"} {
		path := filepath.Join(cfg.Watch.InputDir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	select {
	case event := <-w.Events():
		t.Fatalf("Unexpected event for ignored file: %+v", event)
	case <-time.After(1500 * time.Millisecond):
	}

	thumb.mu.Lock()
	defer thumb.mu.Unlock()
	if len(thumb.requests) != 0 {
		t.Errorf("Expected no generate calls, got %d", len(thumb.requests))
	}
}

func TestNewWatcherRequiresDirs(t *testing.T) {
	cfg := config.Default()
	cfg.Watch.InputDir = ""
	cfg.Watch.OutputDir = ""

	if _, err := NewWatcher(cfg, &fakeThumbnailer{}); err == nil {
		t.Error("Expected error for missing watch directories")
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"my-first_post.jpg", "My First Post"},
		{"/some/dir/hello-world.png", "Hello World"},
		{"already Titled.webp", "Already Titled"},
		{"single.png", "Single"},
		{"multiple   spaces.png", "Multiple Spaces"},
	}
	for _, tt := range tests {
		if got := TitleFromFilename(tt.path); got != tt.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	cfg := testWatchConfig(t)
	cfg.Watch.Format = "jpeg"

	w, err := NewWatcher(cfg, &fakeThumbnailer{})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.watcher.Close()

	if got := w.outputName("/in/sunset.png"); got != "sunset_thumb.jpg" {
		t.Errorf("outputName = %q, want sunset_thumb.jpg", got)
	}

	cfg.Watch.Format = "bogus"
	if got := w.outputName("/in/sunset.png"); got != "sunset_thumb.png" {
		t.Errorf("outputName with bad format = %q, want sunset_thumb.png", got)
	}
}
