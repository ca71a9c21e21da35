package icons

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// searchWeb scrapes an HTML image search for icon candidates and
// returns the first one that fetches and decodes acceptably.
func (s *Searcher) searchWeb(ctx context.Context, query string) (image.Image, error) {
	searchURL := fmt.Sprintf(s.searchURL, url.QueryEscape(query+" icon png"))

	body, err := s.fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search page fetch failed: %w", err)
	}

	candidates := extractImageURLs(body, 5)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no image candidates in search results")
	}

	for _, candidate := range candidates {
		img, err := s.fetchCandidate(ctx, candidate)
		if err != nil {
			s.log.Debugf("Candidate %s rejected: %v", candidate, err)
			continue
		}
		return img, nil
	}

	return nil, fmt.Errorf("all %d candidates rejected", len(candidates))
}

// extractImageURLs walks the document and collects up to max absolute
// img src URLs.
func extractImageURLs(body []byte, max int) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(urls) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if attr.Key != "src" {
					continue
				}
				src := strings.TrimSpace(attr.Val)
				if strings.HasPrefix(src, "//") {
					src = "https:" + src
				}
				if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
					urls = append(urls, src)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls
}
