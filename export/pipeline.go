package export

import (
	"context"
	"path/filepath"
	"strings"

	"thumbforge/config"
	"thumbforge/thumbnail"
)

// Pipeline couples the compositor with the exporters: one call takes a
// request to a finished file. The web UI, watch mode and CLI all go
// through here.
type Pipeline struct {
	Generator *thumbnail.Generator
	Output    config.OutputConfig
}

// Generate composes the thumbnail and writes it to outPath, layered
// when the extension is .ora and flattened otherwise.
func (p *Pipeline) Generate(ctx context.Context, req thumbnail.Request, outPath string) error {
	comp, err := p.Generator.Compose(ctx, req)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".ora":
		return WriteORA(comp, outPath)
	case ".ico":
		return WriteFavicon(comp.Flatten(), outPath, p.Output.FaviconSizes)
	default:
		return WriteRaster(comp.Flatten(), outPath, p.Output)
	}
}
