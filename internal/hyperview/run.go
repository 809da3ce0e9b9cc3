package hyperview

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RunOptions selects the outputs of Run.
type RunOptions struct {
	PNG bool   // write a PNG sequence instead of a GIF
	RAW bool   // also dump every Solid mesh of every frame
	Out string // overrides the scene's gifOut
}

// Preview view angles of the projected volume.
const (
	previewYaw   = 0.55
	previewPitch = 0.35
)

func outPrefix(out string) string {
	return strings.TrimSuffix(out, filepath.Ext(out))
}

// Run loads a scene, ticks through its frames and writes the requested
// outputs.
func Run(ctx context.Context, cfgPath string, opts RunOptions) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if opts.Out != "" {
		cfg.GIFOut = opts.Out
	}
	scene, err := cfg.Build()
	if err != nil {
		return err
	}

	start := time.Now()
	frames, err := scene.Run(ctx)
	if err != nil {
		return err
	}
	DebugLog("Ticks: %d, time: %s", len(frames), time.Since(start))

	prev := NewPreviewer(cfg.Size, scene.Background, previewYaw, previewPitch)
	all := make([][]RenderCommand, len(frames))
	for i, f := range frames {
		all[i] = f.Commands
	}
	prev.Fit(all...)
	imgs, err := RasterizeFrames(ctx, prev, frames)
	if err != nil {
		return err
	}

	prefix := outPrefix(cfg.GIFOut)
	if opts.PNG {
		names, err := SavePNGSequence(imgs, prefix)
		if err != nil {
			return errors.Wrap(err, "saving PNG sequence")
		}
		Logger().Infof("Saved %d PNGs with prefix: %s", len(names), prefix)
	} else {
		if err := SaveAnimatedGIF(imgs, cfg.GIFOut, cfg.GIFDelay); err != nil {
			return errors.Wrap(err, "saving GIF")
		}
		Logger().Infof("Saved animated GIF: %s", cfg.GIFOut)
	}

	if opts.RAW {
		n, err := saveRawMeshes(frames, prefix)
		if err != nil {
			return errors.Wrap(err, "saving RAW meshes")
		}
		Logger().Infof("Saved %d RAW meshes with prefix: %s", n, prefix)
	}
	return nil
}

func saveRawMeshes(frames []Frame, prefix string) (int, error) {
	n := 0
	for _, f := range frames {
		for _, c := range f.Commands {
			if c.Mesh == nil {
				continue
			}
			name := fmt.Sprintf("%s_%04d_%s.raw", prefix, f.Index, strings.ReplaceAll(c.ID, "/", "_"))
			if err := SaveRawMesh(name, *c.Mesh); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// Project loads a scene, ticks it up to frame and writes that frame's render
// commands as JSON.
func Project(ctx context.Context, cfgPath string, frame int, w io.Writer) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	scene, err := cfg.Build()
	if err != nil {
		return err
	}
	if frame < 0 || frame >= scene.Frames {
		return errors.Errorf("frame %d out of range [0,%d)", frame, scene.Frames)
	}
	var f Frame
	for i := 0; i <= frame; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f, err = scene.Tick(i); err != nil {
			return err
		}
	}
	return WriteFrameJSON(w, f)
}

// PolytopeInfo is one catalogue entry with its counts.
type PolytopeInfo struct {
	Name     string
	Vertices int
	Edges    int
}

// Polytopes lists the catalogue.
func Polytopes() ([]PolytopeInfo, error) {
	out := make([]PolytopeInfo, 0, len(catalogue))
	for _, name := range PolytopeNames() {
		p, err := NewPolytope(name, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, PolytopeInfo{Name: p.Name, Vertices: len(p.Verts), Edges: len(p.Edges)})
	}
	return out, nil
}
