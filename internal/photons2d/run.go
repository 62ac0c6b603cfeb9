package photons2d

import (
	"os"
	"time"
)

// Run renders the scene described by the JSON file at cfgPath, or a built-in
// scene when cfgPath names one, and writes every configured output.
func Run(cfgPath string) error {
	var (
		cfg   *Config
		scene *Scene
	)
	if s, ok, err := builtinScene(cfgPath, DefaultWidth, DefaultHeight); ok {
		if err != nil {
			return err
		}
		cfg = &Config{Width: DefaultWidth, Height: DefaultHeight, Exposure: DefaultExposure, Output: cfgPath + ".png"}
		cfg.applyDefaults()
		scene = s
	} else {
		cfg, err = loadConfig(cfgPath)
		if err != nil {
			return err
		}
		if scene, err = cfg.BuildScene(); err != nil {
			return err
		}
	}
	if ForceSequential {
		cfg.Strategy = "sequential"
	}
	if DumpTree {
		if _, err := DumpBVH(scene, os.Stderr); err != nil {
			return err
		}
	}
	img, frames, err := render(cfg, scene)
	if err != nil {
		return err
	}
	return save(cfg, img, frames)
}

// render runs the configured renderer, collecting snapshots when a GIF is
// requested.
func render(cfg *Config, scene *Scene) (*Image, []*Image, error) {
	var hooks Hooks
	if Debug {
		hooks.Log = &RayLog{}
	}

	mean := 0.0
	if cfg.ProbeRays > 0 {
		m, err := EstimateSegments(scene, cfg.ProbeRays)
		if err != nil {
			return nil, nil, err
		}
		mean = m
		Logger().Info("probe", "segmentsPerPhoton", mean,
			"expectedSegments", count(int64(mean*float64(cfg.Rays))))
	}

	var frames []*Image
	if cfg.GIFOut != "" && cfg.Snapshots > 0 {
		expected := mean * float64(cfg.Rays)
		if expected < 1 {
			expected = float64(cfg.Rays)
		}
		hooks.SnapshotEvery = int64(expected/float64(cfg.Snapshots)) + 1
		// called from the single goroutine that owns the image
		hooks.OnSnapshot = func(img *Image) { frames = append(frames, img) }
	}

	r, err := cfg.Renderer(hooks)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	img, err := r.Render(scene, cfg.Rays)
	if err != nil {
		return nil, nil, err
	}
	DebugLog("Rays: %s, segments: %s, time: %s", count(int64(cfg.Rays)), count(img.Rays()), time.Since(start))
	if hooks.Log != nil {
		DebugLog("Ray log: %s", hooks.Log)
	}
	if hooks.OnSnapshot != nil {
		frames = append(frames, img)
	}
	return img, frames, nil
}

func save(cfg *Config, img *Image, frames []*Image) error {
	if err := SaveImage(img, cfg.Output, cfg.Exposure, cfg.Gamma); err != nil {
		return err
	}
	Logger().Info("saved image", "path", cfg.Output)
	if cfg.PreviewOut != "" {
		if err := SavePreview(img, cfg.PreviewOut, cfg.Exposure, cfg.Gamma, cfg.PreviewWidth); err != nil {
			return err
		}
		DebugLog("Saved preview: %s", cfg.PreviewOut)
	}
	if cfg.GIFOut != "" && len(frames) > 0 {
		if err := SaveAnimatedGIF(frames, cfg.GIFOut, cfg.GIFDelay, cfg.Exposure, cfg.Gamma); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s (%d frames)", cfg.GIFOut, len(frames))
	}
	if cfg.RawOut != "" {
		if err := SaveRawRGB64(img, cfg.RawOut); err != nil {
			return err
		}
		DebugLog("Saved raw buffer: %s", cfg.RawOut)
	}
	return nil
}
