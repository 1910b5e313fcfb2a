package cmd

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/output"
)

func TestOutputTarget(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name       string
		out        string
		format     string
		wantPath   string
		wantFormat output.Format
	}{
		{"defaults", "", "", filepath.Join("output", "cornell", "render_20240309_140507.png"), output.FormatPNG},
		{"format only", "", "ppm", filepath.Join("output", "cornell", "render_20240309_140507.ppm"), output.FormatPPM},
		{"extension", "frame.ppm", "", "frame.ppm", output.FormatPPM},
		{"flag beats extension", "frame.ppm", "png", "frame.ppm", output.FormatPNG},
		{"no extension", "frame", "", "frame", output.FormatPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, format, err := outputTarget(tt.out, tt.format, "cornell", now)
			if err != nil {
				t.Fatalf("outputTarget() error: %v", err)
			}
			if path != tt.wantPath || format != tt.wantFormat {
				t.Errorf("outputTarget() = %q, %q; want %q, %q", path, format, tt.wantPath, tt.wantFormat)
			}
		})
	}

	if _, _, err := outputTarget("frame.jpg", "", "cornell", now); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for .jpg, got %v", err)
	}
}
