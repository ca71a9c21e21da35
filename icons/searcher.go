package icons

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"thumbforge/config"
	"thumbforge/logging"

	// Register decoders for the formats icon sources serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// maxIconBody caps how much of an icon response is read.
const maxIconBody = 4 << 20

// Searcher resolves a search term to an icon image by trying multiple
// sources in order: image web search, SimpleIcons, Icons8, and finally
// a generated letter badge.
type Searcher struct {
	cfg    *config.Config
	client *http.Client
	log    *logrus.Entry

	// Endpoints are fields so tests can point them at a local server.
	searchURL      string
	simpleIconURLs []string
	icons8URLs     []string
}

// NewSearcher creates an icon searcher using the configured HTTP
// timeout and user agent.
func NewSearcher(cfg *config.Config) *Searcher {
	return &Searcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		},
		log:       logging.WithFields(logging.Fields{"component": "icons"}),
		searchURL: "https://html.duckduckgo.com/html/?q=%s",
		simpleIconURLs: []string{
			"https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/%s.svg",
			"https://raw.githubusercontent.com/simple-icons/simple-icons/develop/icons/%s.svg",
		},
		icons8URLs: []string{
			"https://img.icons8.com/color/96/%s.png",
			"https://img.icons8.com/ios-filled/100/%s.png",
			"https://img.icons8.com/material/96/%s.png",
		},
	}
}

// Search resolves query to an icon. It never fails: when every network
// strategy misses (or searching is disabled), a generated placeholder
// badge is returned.
func (s *Searcher) Search(ctx context.Context, query string) image.Image {
	s.log.Infof("Searching icon for %q", query)

	if s.cfg.Search.Enabled {
		if img, err := s.searchWeb(ctx, query); err == nil {
			s.log.Infof("Icon for %q found via web search", query)
			return img
		} else {
			s.log.Debugf("Web search miss for %q: %v", query, err)
		}

		if img, err := s.searchSimpleIcons(ctx, query); err == nil {
			s.log.Infof("Icon for %q found on SimpleIcons", query)
			return img
		} else {
			s.log.Debugf("SimpleIcons miss for %q: %v", query, err)
		}

		if img, err := s.searchIcons8(ctx, query); err == nil {
			s.log.Infof("Icon for %q found on Icons8", query)
			return img
		} else {
			s.log.Debugf("Icons8 miss for %q: %v", query, err)
		}
	}

	s.log.Infof("No icon found for %q, using generated placeholder", query)
	return Placeholder(query)
}

// fetch performs a GET with browser-ish headers and returns the body.
func (s *Searcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.Search.UserAgent)
	req.Header.Set("Accept", "image/*,text/html;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// fetchImage fetches url and decodes it.
func (s *Searcher) fetchImage(ctx context.Context, url string) (image.Image, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// fetchCandidate is fetchImage with the stricter rules applied to web
// search results: tracking pixels and tiny previews are rejected.
func (s *Searcher) fetchCandidate(ctx context.Context, url string) (image.Image, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(body) <= 1024 {
		return nil, fmt.Errorf("response too small (%d bytes)", len(body))
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	minPx := s.cfg.Search.MinIconPx
	b := img.Bounds()
	if b.Dx() < minPx || b.Dy() < minPx {
		return nil, fmt.Errorf("image %dx%d below minimum %dpx", b.Dx(), b.Dy(), minPx)
	}
	return img, nil
}
