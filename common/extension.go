package common

import (
	"path/filepath"
	"strings"
)

// validExtensions lists the extensions accepted as already-correct for
// each output format.
var validExtensions = map[string][]string{
	"png":  {".png"},
	"jpeg": {".jpg", ".jpeg"},
	"webp": {".webp"},
	"ora":  {".ora"},
	"ico":  {".ico"},
}

// KnownFormats returns the output formats the exporters understand.
func KnownFormats() []string {
	return []string{"png", "jpeg", "webp", "ora", "ico"}
}

// IsKnownFormat reports whether format names a supported output format.
func IsKnownFormat(format string) bool {
	_, ok := validExtensions[strings.ToLower(format)]
	return ok
}

// NormalizeExtension validates and corrects the extension of an output
// filename for the requested format:
//
//	NormalizeExtension("thumbnail", "png")   == "thumbnail.png"
//	NormalizeExtension("image.jpg", "png")   == "image.png"
//	NormalizeExtension("file.txt", "ora")    == "file.ora"
//	NormalizeExtension("correct.png", "png") == "correct.png"
//	NormalizeExtension("", "png")            == "thumbnail.png"
//
// Matching is case-insensitive; "photo.JPG" counts as a valid jpeg name.
func NormalizeExtension(filename, format string) string {
	format = strings.ToLower(format)

	if filename == "" {
		return "thumbnail" + preferredExtension(format)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range validExtensions[format] {
		if ext == valid {
			return filename
		}
	}

	if ext == "" {
		return filename + preferredExtension(format)
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return stem + preferredExtension(format)
}

// FormatFromPath derives the output format from a filename extension.
func FormatFromPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for format, exts := range validExtensions {
		for _, valid := range exts {
			if ext == valid {
				return format, true
			}
		}
	}
	return "", false
}

func preferredExtension(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}
