// Package notify pushes ntfy.sh notifications when thumbnails finish.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"thumbforge/config"
	"thumbforge/logging"
)

// NtfySender sends push notifications via ntfy.sh
type NtfySender struct {
	cfg    *config.Config
	client *http.Client
	log    *logrus.Entry
}

// NtfyMessage represents a ntfy notification
type NtfyMessage struct {
	Topic    string       `json:"topic"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Actions  []NtfyAction `json:"actions,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
	Priority int          `json:"priority,omitempty"`
}

// NtfyAction represents a clickable action button
type NtfyAction struct {
	Action string `json:"action"` // "view" or "http"
	Label  string `json:"label"`
	URL    string `json:"url"`
	Clear  bool   `json:"clear,omitempty"`
}

// NewNtfySender creates a new ntfy sender
func NewNtfySender(cfg *config.Config) *NtfySender {
	return &NtfySender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logging.WithFields(logging.Fields{"component": "notify"}),
	}
}

// ThumbnailReady notifies that a thumbnail was generated. location is a
// file path (watch mode) or a download URL (web UI).
func (n *NtfySender) ThumbnailReady(title, location string) error {
	if !n.cfg.Ntfy.Enabled {
		n.log.Debug("ntfy notifications disabled")
		return nil
	}

	msg := NtfyMessage{
		Topic:    n.cfg.Ntfy.Topic,
		Title:    fmt.Sprintf("Thumbnail ready: %s", title),
		Message:  location,
		Priority: 3,
		Tags:     []string{"frame_with_picture"},
	}
	if isURL(location) {
		msg.Actions = []NtfyAction{{
			Action: "view",
			Label:  "Open thumbnail",
			URL:    location,
		}}
	}

	return n.send(msg)
}

func isURL(s string) bool {
	return len(s) > 8 && (s[:7] == "http://" || s[:8] == "https://")
}

// send sends a ntfy notification using headers (not JSON body)
func (n *NtfySender) send(msg NtfyMessage) error {
	url := fmt.Sprintf("%s/%s", n.cfg.Ntfy.Server, n.cfg.Ntfy.Topic)

	// Message goes in the body, metadata in headers, per the ntfy docs.
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(msg.Message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Title", msg.Title)
	req.Header.Set("Priority", fmt.Sprintf("%d", msg.Priority))
	if len(msg.Tags) > 0 {
		req.Header.Set("Tags", msg.Tags[0])
	}
	if len(msg.Actions) > 0 {
		actionsJSON, _ := json.Marshal(msg.Actions)
		req.Header.Set("Actions", string(actionsJSON))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}

	n.log.Infof("ntfy notification sent: %s", msg.Title)
	return nil
}
