package photons2d

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DawnScene is a white-hot point light above a horizon line: light at the
// centre emitting in every direction with a 4500K spectrum, floor three
// quarters down.
func DawnScene(width, height int) (*Scene, error) {
	w, h := float64(width), float64(height)
	s := NewScene(width, height, RectFromPoints(Point{0, 0}, Point{w, h}))
	mat, err := NewHQZLegacy(0.3, 0.3, 0.3)
	if err != nil {
		return nil, err
	}
	if err := s.AddObject(NewLine(Constant(0), Constant(h*0.75), Constant(w), Constant(0), mat)); err != nil {
		return nil, err
	}
	l, err := NewLight(Constant(1), Constant(w/2), Constant(h/2), Constant(0), Constant(0), Range(360, 0), Blackbody(4500))
	if err != nil {
		return nil, err
	}
	s.AddLight(l)
	return s, s.Validate()
}

// rainbowLasers are (ray angle in degrees, wavelength in nm) pairs.
var rainbowLasers = [...][2]float64{
	{30, 694}, {31, 676}, {32, 647}, {33, 635}, {34, 633}, {35, 628},
	{36, 612}, {37, 594}, {38, 578}, {39, 568}, {40, 543}, {41, 532},
	{42, 530}, {43, 514}, {44, 511}, {45, 501}, {46, 496}, {47, 488},
	{48, 475}, {49, 458}, {50, 442}, {51, 428}, {52, 416},
}

// LaserRainbowScene fans monochromatic lasers from one spot into a room with
// diffuse walls and a partly transmissive floor.
func LaserRainbowScene(width, height int) (*Scene, error) {
	w, h := float64(width), float64(height)
	s := NewScene(width, height, RectFromPoints(Point{0, 0}, Point{w + 1, h + 1}))
	wall, err := NewHQZLegacy(1, 0, 0)
	if err != nil {
		return nil, err
	}
	floor, err := NewHQZLegacy(0.1, 0.3, 0.5)
	if err != nil {
		return nil, err
	}
	objects := []Object{
		NewLine(Constant(0), Constant(h), Constant(w), Constant(0), wall),       // bottom
		NewLine(Constant(0), Constant(0), Constant(0), Constant(h), wall),       // left
		NewLine(Constant(w), Constant(0), Constant(0), Constant(h), wall),       // right
		NewLine(Constant(0), Constant(h*0.72), Constant(w), Constant(0), floor), // floor
	}
	for _, o := range objects {
		if err := s.AddObject(o); err != nil {
			return nil, err
		}
	}
	// the lasers sit at (180,80) on a 1920x1080 canvas
	x, y := 180*w/1920, 80*h/1080
	for _, l := range rainbowLasers {
		light, err := NewLight(Constant(1), Constant(x), Constant(y), Range(2*math.Pi, 0), Range(2, 0), Constant(l[0]), Constant(l[1]))
		if err != nil {
			return nil, err
		}
		s.AddLight(light)
	}
	return s, s.Validate()
}

// BuiltinScenes are the scenes the command line accepts by name.
var BuiltinScenes = map[string]func(width, height int) (*Scene, error){
	"dawn":          DawnScene,
	"laser-rainbow": LaserRainbowScene,
}

func builtinScene(name string, width, height int) (*Scene, bool, error) {
	build, ok := BuiltinScenes[strings.ToLower(name)]
	if !ok {
		return nil, false, nil
	}
	s, err := build(width, height)
	if err != nil {
		return nil, true, fmt.Errorf("scene %s: %w", name, err)
	}
	return s, true, nil
}

// BuiltinSceneNames lists BuiltinScenes in sorted order.
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(BuiltinScenes))
	for n := range BuiltinScenes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
