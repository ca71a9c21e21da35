package common

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb with hash", "#ff8000", color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"rgb without hash", "336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, false},
		{"rgba", "#00000080", color.NRGBA{A: 0x80}, false},
		{"white", "#ffffff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"too short", "#fff", color.NRGBA{}, true},
		{"garbage", "#zzzzzz", color.NRGBA{}, true},
		{"empty", "", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
