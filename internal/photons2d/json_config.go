package photons2d

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RectCfg struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// MaterialCfg holds HQZ probabilities; omitted keys take the defaults of
// DefaultHQZLegacy.
type MaterialCfg struct {
	Diffuse  *float64 `json:"diffuse,omitempty"`
	Reflect  *float64 `json:"reflect,omitempty"`
	Transmit *float64 `json:"transmit,omitempty"`
}

type LightCfg struct {
	Power         *Sample `json:"power,omitempty"` // defaults to 1
	X             Sample  `json:"x"`
	Y             Sample  `json:"y"`
	PolarAngle    Sample  `json:"polarAngle"` // radians
	PolarDistance Sample  `json:"polarDistance"`
	RayAngle      Sample  `json:"rayAngle"`   // degrees
	Wavelength    Sample  `json:"wavelength"` // nm; 0 is white
}

type ObjectCfg struct {
	Type     string       `json:"type,omitempty"` // "line" (default) or "curve"
	X0       Sample       `json:"x0"`
	Y0       Sample       `json:"y0"`
	DX       Sample       `json:"dx"`
	DY       Sample       `json:"dy"`
	CX       Sample       `json:"cx"` // curve control point
	CY       Sample       `json:"cy"`
	Material *MaterialCfg `json:"material,omitempty"`
}

type Config struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Rays         int         `json:"rays"`
	Seed         uint32      `json:"seed"`
	Exposure     float64     `json:"exposure"`
	Gamma        float64     `json:"gamma,omitempty"`
	Viewport     *RectCfg    `json:"viewport,omitempty"` // defaults to the image rect
	Strategy     string      `json:"strategy,omitempty"` // "pipeline" (default) or "sequential"
	Index        string      `json:"index,omitempty"`    // "linear", "bvh", "rtree"; empty picks by object count
	Colliders    int         `json:"colliders,omitempty"`
	Shaders      int         `json:"shaders,omitempty"`
	MaxInFlight  int         `json:"maxInFlight,omitempty"`
	Output       string      `json:"output,omitempty"`
	PreviewOut   string      `json:"previewOut,omitempty"`
	PreviewWidth int         `json:"previewWidth,omitempty"`
	GIFOut       string      `json:"gifOut,omitempty"`
	GIFDelay     int         `json:"gifDelay,omitempty"`
	Snapshots    int         `json:"snapshots,omitempty"`
	RawOut       string      `json:"rawOut,omitempty"`
	ProbeRays    int         `json:"probeRays,omitempty"`
	Lights       []LightCfg  `json:"lights"`
	Objects      []ObjectCfg `json:"objects,omitempty"`
}

// Build validates and constructs the runtime material.
func (mc *MaterialCfg) Build() (Material, error) {
	def := DefaultHQZLegacy()
	if mc == nil {
		return def, nil
	}
	pick := func(p *float64, d float64) float64 {
		if p == nil {
			return d
		}
		return *p
	}
	return NewHQZLegacy(pick(mc.Diffuse, def.D), pick(mc.Reflect, def.R), pick(mc.Transmit, def.T))
}

func (lc LightCfg) Build() (*Light, error) {
	power := Constant(1)
	if lc.Power != nil {
		power = *lc.Power
	}
	return NewLight(power, lc.X, lc.Y, lc.PolarAngle, lc.PolarDistance, lc.RayAngle, lc.Wavelength)
}

func (oc ObjectCfg) Build() (Object, error) {
	mat, err := oc.Material.Build()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(oc.Type) {
	case "", "line":
		return NewLine(oc.X0, oc.Y0, oc.DX, oc.DY, mat), nil
	case "curve":
		return &Curve{X0: oc.X0, Y0: oc.Y0, DX: oc.DX, DY: oc.DY, CX: oc.CX, CY: oc.CY, Mat: mat}, nil
	default:
		return nil, fmt.Errorf("unknown object type %q", oc.Type)
	}
}

func (c *Config) viewport() Rect {
	if c.Viewport == nil {
		return RectFromPoints(Point{0, 0}, Point{float64(c.Width), float64(c.Height)})
	}
	v := c.Viewport
	return RectFromPoints(Point{v.X0, v.Y0}, Point{v.X1, v.Y1})
}

// BuildScene turns the configuration into a renderable scene.
func (c *Config) BuildScene() (*Scene, error) {
	s := NewScene(c.Width, c.Height, c.viewport())
	s.SetSeed(c.Seed)
	s.Index = HitIndex(strings.ToLower(c.Index))
	for i, lc := range c.Lights {
		l, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(l)
	}
	for i, oc := range c.Objects {
		o, err := oc.Build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := s.AddObject(o); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Renderer returns the configured strategy.
func (c *Config) Renderer(hooks Hooks) (Renderer, error) {
	switch strings.ToLower(c.Strategy) {
	case "", "pipeline":
		return Pipeline{Colliders: c.Colliders, Shaders: c.Shaders, MaxInFlight: c.MaxInFlight, Hooks: hooks}, nil
	case "sequential":
		return Sequential{Hooks: hooks}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}

// applyDefaults fills zero values; it never overrides what the file set.
func (c *Config) applyDefaults() {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Rays <= 0 {
		c.Rays = c.Width * c.Height / 2
	}
	if c.Gamma <= 0 {
		c.Gamma = DefaultGamma
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = DefaultPreviewSize
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = DefaultGIFDelay
	}
	if c.ProbeRays == 0 { // negative disables probing
		c.ProbeRays = DefaultProbeRays
	}
}

func parseConfig(data []byte) (*Config, error) {
	// exposure 0 is meaningful, so its default is set before decoding
	cfg := Config{Exposure: DefaultExposure}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	cfg.applyDefaults()
	if len(cfg.Lights) == 0 {
		return nil, fmt.Errorf("config: %w", ErrNoLights)
	}
	return &cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: size=(%d, %d), rays=%s, seed=%d, exposure=%g, gamma=%g",
		path, cfg.Width, cfg.Height, count(int64(cfg.Rays)), cfg.Seed, cfg.Exposure, cfg.Gamma)
	return cfg, nil
}
