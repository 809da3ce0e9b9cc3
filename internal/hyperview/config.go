package hyperview

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Rotation in degrees for scene files (friendlier than radians).
type Rot4Deg struct {
	XY Real `json:"xy" yaml:"xy"`
	XZ Real `json:"xz" yaml:"xz"`
	XW Real `json:"xw" yaml:"xw"`
	YZ Real `json:"yz" yaml:"yz"`
	YW Real `json:"yw" yaml:"yw"`
	ZW Real `json:"zw" yaml:"zw"`
}

func (r Rot4Deg) Radians() Rot4 {
	const k = math.Pi / 180
	return Rot4{
		XY: r.XY * k, XZ: r.XZ * k, XW: r.XW * k,
		YZ: r.YZ * k, YW: r.YW * k, ZW: r.ZW * k,
	}
}

// ViewCfg overrides the camera-space viewing frame.
type ViewCfg struct {
	From Point4  `json:"from" yaml:"from"`
	To   Point4  `json:"to" yaml:"to"`
	Up   Vector4 `json:"up" yaml:"up"`
	Over Vector4 `json:"over" yaml:"over"`
}

type CameraCfg struct {
	Position Point4   `json:"position" yaml:"position"`
	RotDeg   Rot4Deg  `json:"rotDeg" yaml:"rotDeg"`
	View     *ViewCfg `json:"view,omitempty" yaml:"view,omitempty"`
}

// KeyframeCfg is one camera pose of an animated path. Keyframes are spread
// evenly over the frame count.
type KeyframeCfg struct {
	Position Point4  `json:"position" yaml:"position"`
	RotDeg   Rot4Deg `json:"rotDeg" yaml:"rotDeg"`
}

// GroupCfg is either a catalogue polytope or explicit vertices and edges.
type GroupCfg struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Polytope   string   `json:"polytope,omitempty" yaml:"polytope,omitempty"`
	Size       Real     `json:"size,omitempty" yaml:"size,omitempty"` // circumradius, defaults 1
	Vertices   []Point4 `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Edges      []Edge   `json:"edges,omitempty" yaml:"edges,omitempty"`
	Mode       string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"` // hex, e.g. "#4da6ff"
	PointScale Real     `json:"pointScale,omitempty" yaml:"pointScale,omitempty"`
	Scales     []Real   `json:"scales,omitempty" yaml:"scales,omitempty"`
}

type ObjectCfg struct {
	Name     string     `json:"name" yaml:"name"`
	Position Point4     `json:"position" yaml:"position"`
	RotDeg   Rot4Deg    `json:"rotDeg" yaml:"rotDeg"`
	SpinDeg  Rot4Deg    `json:"spinDeg" yaml:"spinDeg"` // per frame
	Groups   []GroupCfg `json:"groups" yaml:"groups"`
}

type Config struct {
	FOVDeg       Real          `json:"fovDeg,omitempty" yaml:"fovDeg,omitempty"`
	Near         Real          `json:"near,omitempty" yaml:"near,omitempty"`
	SafetyHalf   Real          `json:"safetyHalf,omitempty" yaml:"safetyHalf,omitempty"`
	Orthographic bool          `json:"orthographic,omitempty" yaml:"orthographic,omitempty"`
	Size         int           `json:"size,omitempty" yaml:"size,omitempty"`
	Frames       int           `json:"frames,omitempty" yaml:"frames,omitempty"`
	GIFOut       string        `json:"gifOut,omitempty" yaml:"gifOut,omitempty"`
	GIFDelay     int           `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty"`
	Background   string        `json:"background,omitempty" yaml:"background,omitempty"`
	Camera       CameraCfg     `json:"camera" yaml:"camera"`
	Keyframes    []KeyframeCfg `json:"keyframes,omitempty" yaml:"keyframes,omitempty"`
	Objects      []ObjectCfg   `json:"objects" yaml:"objects"`
}

// LoadConfig reads a JSON or YAML scene file (by extension), expanding
// ${VAR} references first, then applies defaults and validates.
func LoadConfig(path string) (*Config, error) {
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %s", path)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	DebugLog("Loaded config from %s: objects=%d, frames=%d, size=%d, fov=%g", path, len(cfg.Objects), cfg.Frames, cfg.Size, cfg.FOVDeg)
	return cfg, nil
}

// ParseConfig decodes a scene given its file extension (".yaml", ".yml" or
// anything else for JSON).
func ParseConfig(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "decoding yaml")
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "decoding json")
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.FOVDeg <= 0 {
		c.FOVDeg = DefaultFOVDeg
	}
	if c.Near <= 0 {
		c.Near = DefaultNear
	}
	if c.SafetyHalf <= 0 {
		c.SafetyHalf = DefaultSafetyHalf
	}
	if c.Size <= 0 {
		c.Size = DefaultImageSize
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.GIFOut == "" {
		c.GIFOut = GIFOut
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = DefaultGIFDelay
	}
	for i := range c.Objects {
		o := &c.Objects[i]
		if o.Name == "" {
			o.Name = fmt.Sprintf("object%d", i)
		}
		for j := range o.Groups {
			g := &o.Groups[j]
			if g.Name == "" {
				if g.Polytope != "" {
					g.Name = g.Polytope
				} else {
					g.Name = fmt.Sprintf("group%d", j)
				}
			}
			if g.Size <= 0 {
				g.Size = 1
			}
			if g.Color == "" {
				g.Color = "#cccccc"
			}
		}
	}
}

// Validate reports every problem at once, wrapped in ErrInvalidScene.
func (c *Config) Validate() error {
	var errs error
	if c.FOVDeg >= 180 {
		errs = multierr.Append(errs, errors.Errorf("fovDeg must be in (0, 180), got %g", c.FOVDeg))
	}
	if c.Background != "" {
		if _, err := colorful.Hex(c.Background); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "background %q", c.Background))
		}
	}
	if len(c.Objects) == 0 {
		errs = multierr.Append(errs, errors.New("scene has no objects"))
	}
	seen := map[string]bool{}
	for _, o := range c.Objects {
		if seen[o.Name] {
			errs = multierr.Append(errs, errors.Errorf("duplicate object name %q", o.Name))
		}
		seen[o.Name] = true
		if len(o.Groups) == 0 {
			errs = multierr.Append(errs, errors.Errorf("object %q has no groups", o.Name))
		}
		for _, g := range o.Groups {
			errs = multierr.Append(errs, g.validate(o.Name))
		}
	}
	if errs != nil {
		return errors.Wrap(ErrInvalidScene, errs.Error())
	}
	return nil
}

func (g GroupCfg) validate(object string) error {
	var errs error
	where := CommandID(object, g.Name)
	if g.Polytope == "" && len(g.Vertices) == 0 {
		errs = multierr.Append(errs, errors.Errorf("%s: needs a polytope or vertices", where))
	}
	if g.Polytope != "" && len(g.Vertices) != 0 {
		errs = multierr.Append(errs, errors.Errorf("%s: polytope and vertices are exclusive", where))
	}
	if _, err := ParseRenderMode(g.Mode); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, where))
	}
	if _, err := colorful.Hex(g.Color); err != nil {
		errs = multierr.Append(errs, errors.Wrapf(err, "%s: color %q", where, g.Color))
	}
	return errs
}

// Build constructs the runtime scene.
func (c *Config) Build() (*Scene, error) {
	cam := NewCamera(c.Camera.Position)
	cam.FOV = c.FOVDeg * math.Pi / 180
	cam.Near = c.Near
	cam.Orientation = OrientationFromRot4(c.Camera.RotDeg.Radians())
	if v := c.Camera.View; v != nil {
		f, err := NewViewingFrame(v.From, v.To, v.Up, v.Over)
		if err != nil {
			return nil, errors.Wrap(err, "camera view")
		}
		cam.Frame = f
	}
	if err := cam.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidScene, err.Error())
	}

	objects := make([]*Hyperobject, 0, len(c.Objects))
	for _, oc := range c.Objects {
		o, err := oc.Build()
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}

	keys := make([]Keyframe, len(c.Keyframes))
	for i, k := range c.Keyframes {
		keys[i] = Keyframe{Position: k.Position, Orientation: OrientationFromRot4(k.RotDeg.Radians())}
	}

	bg := colorful.Color{}
	if c.Background != "" {
		col, err := colorful.Hex(c.Background)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidScene, err.Error())
		}
		bg = col
	}

	pipe := NewPipeline()
	pipe.SafetyHalf = c.SafetyHalf
	pipe.Orthographic = c.Orthographic
	return &Scene{
		Camera:     cam,
		Objects:    objects,
		Keyframes:  keys,
		Pipeline:   pipe,
		Frames:     c.Frames,
		Background: bg,
	}, nil
}

func (oc ObjectCfg) Build() (*Hyperobject, error) {
	groups := make([]*GeometryGroup, 0, len(oc.Groups))
	for _, gc := range oc.Groups {
		g, err := gc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "object %q", oc.Name)
		}
		groups = append(groups, g)
	}
	o := NewHyperobject(oc.Name, oc.Position, groups...)
	o.Orientation = OrientationFromRot4(oc.RotDeg.Radians())
	o.Spin = oc.SpinDeg.Radians()
	return o, nil
}

func (gc GroupCfg) Build() (*GeometryGroup, error) {
	mode, err := ParseRenderMode(gc.Mode)
	if err != nil {
		return nil, err
	}
	col, err := colorful.Hex(gc.Color)
	if err != nil {
		return nil, errors.Wrapf(err, "color %q", gc.Color)
	}
	var g *GeometryGroup
	if gc.Polytope != "" {
		p, err := NewPolytope(gc.Polytope, gc.Size)
		if err != nil {
			return nil, err
		}
		g, err = NewGeometryGroup(gc.Name, p.Verts, p.Edges, mode, col)
		if err != nil {
			return nil, err
		}
	} else {
		verts := make([]Point4, len(gc.Vertices))
		for i, v := range gc.Vertices {
			verts[i] = v.Mul(gc.Size)
		}
		g, err = NewGeometryGroup(gc.Name, verts, gc.Edges, mode, col)
		if err != nil {
			return nil, err
		}
	}
	switch {
	case len(gc.Scales) > 0:
		if err := g.SetScale(gc.Scales); err != nil {
			return nil, err
		}
	case gc.PointScale > 0:
		s := make([]Real, len(g.Template))
		for i := range s {
			s[i] = gc.PointScale
		}
		if err := g.SetScale(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}
