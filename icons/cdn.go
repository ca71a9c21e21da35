package icons

import (
	"context"
	"fmt"
	"image"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// simpleIconsSlug turns "Visual Studio Code" into "visualstudiocode".
func simpleIconsSlug(query string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(query), "")
}

// icons8Slug turns "visual studio" into "visual-studio".
func icons8Slug(query string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(query), " ", "-"))
}

// searchSimpleIcons fetches a brand SVG from the SimpleIcons CDNs and
// rasterizes it.
func (s *Searcher) searchSimpleIcons(ctx context.Context, query string) (image.Image, error) {
	slug := simpleIconsSlug(query)
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}

	for _, pattern := range s.simpleIconURLs {
		body, err := s.fetch(ctx, fmt.Sprintf(pattern, slug))
		if err != nil {
			continue
		}
		img, err := RasterizeSVG(body, 512, 512)
		if err != nil {
			s.log.Debugf("SimpleIcons SVG for %q did not rasterize: %v", slug, err)
			continue
		}
		return img, nil
	}

	return nil, fmt.Errorf("no SimpleIcons match for %q", slug)
}

// searchIcons8 tries the Icons8 direct-PNG URL patterns.
func (s *Searcher) searchIcons8(ctx context.Context, query string) (image.Image, error) {
	slug := icons8Slug(query)
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}

	for _, pattern := range s.icons8URLs {
		img, err := s.fetchImage(ctx, fmt.Sprintf(pattern, slug))
		if err != nil {
			continue
		}
		return img, nil
	}

	return nil, fmt.Errorf("no Icons8 match for %q", slug)
}
