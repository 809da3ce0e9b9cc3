package hyperview

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveAnimatedGIF writes one GIF frame per image, looping forever.
// delay is in 100ths of a second (e.g., 4 => 25 fps).
func SaveAnimatedGIF(frames []image.Image, path string, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to write")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for k, img := range frames {
		if k%max(1, len(frames)/10) == 0 {
			DebugLog("[GIF] %.2f%%", float64(k+1)*100/float64(len(frames)))
		}
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, img.Bounds().Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(gif.EncodeAll(f, out), "encoding %s", path)
}
