package common

import "testing"

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		format   string
		want     string
	}{
		{"no extension", "thumbnail", "png", "thumbnail.png"},
		{"already correct", "correct.png", "png", "correct.png"},
		{"uppercase correct", "photo.PNG", "png", "photo.PNG"},
		{"other image extension", "image.jpg", "png", "image.png"},
		{"conflicting extension", "file.txt", "ora", "file.ora"},
		{"unknown extension", "file.xyz", "png", "file.png"},
		{"empty filename", "", "png", "thumbnail.png"},
		{"empty filename jpeg", "", "jpeg", "thumbnail.jpg"},
		{"jpeg accepts jpg", "photo.jpg", "jpeg", "photo.jpg"},
		{"jpeg accepts jpeg", "photo.jpeg", "jpeg", "photo.jpeg"},
		{"png does not accept jpg", "photo.jpg", "png", "photo.png"},
		{"webp fixed", "cover.png", "webp", "cover.webp"},
		{"dotted stem", "my.blog.post", "png", "my.blog.png"},
		{"ico", "favicon", "ico", "favicon.ico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExtension(tt.filename, tt.format)
			if got != tt.want {
				t.Errorf("NormalizeExtension(%q, %q) = %q, want %q", tt.filename, tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		format string
		ok     bool
	}{
		{"out.png", "png", true},
		{"out.jpg", "jpeg", true},
		{"out.JPEG", "jpeg", true},
		{"out.ora", "ora", true},
		{"out.ico", "ico", true},
		{"out.webp", "webp", true},
		{"out.txt", "", false},
		{"out", "", false},
	}

	for _, tt := range tests {
		format, ok := FormatFromPath(tt.path)
		if format != tt.format || ok != tt.ok {
			t.Errorf("FormatFromPath(%q) = (%q, %v), want (%q, %v)", tt.path, format, ok, tt.format, tt.ok)
		}
	}
}

func TestIsKnownFormat(t *testing.T) {
	for _, format := range KnownFormats() {
		if !IsKnownFormat(format) {
			t.Errorf("IsKnownFormat(%q) = false, want true", format)
		}
	}
	if IsKnownFormat("psd") {
		t.Error("IsKnownFormat(\"psd\") = true, want false")
	}
}
