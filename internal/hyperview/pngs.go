package hyperview

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNGSequence writes one PNG per frame as <prefix>_<k>.png with the
// index zero-padded to the width of the last one. It returns the file names.
func SavePNGSequence(frames []image.Image, prefix string) ([]string, error) {
	width := 1
	if n := len(frames); n > 1 {
		width = int(math.Log10(float64(n-1))) + 1
	}
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(frames))
	for k, img := range frames {
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return names, err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(f, img); err != nil {
			f.Close()
			return names, err
		}
		if err := f.Close(); err != nil {
			return names, err
		}
		names = append(names, full)
	}
	return names, nil
}
