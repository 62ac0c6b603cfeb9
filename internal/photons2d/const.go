package photons2d

const (
	// MaxBounces is the bounce budget of a freshly spawned photon.
	MaxBounces = 1000
	// MinHitDistance rejects hits this close to a ray origin (self-intersection at spawn/bounce points).
	MinHitDistance = 3.0
	// DitherSeed seeds the tone-mapping dither stream; fixed so exports are reproducible.
	DitherSeed = 0
	// RefArea is the 1024x576 reference canvas that exposure is calibrated against.
	RefArea = 1024.0 * 576.0
	// LineBrightness is the per-pixel energy of a unit-length Wu line step.
	LineBrightness = 128.0

	// config defaults
	DefaultWidth       = 1024
	DefaultHeight      = 576
	DefaultExposure    = 0.7
	DefaultGamma       = 1.2 // exponent applied after scaling (1/gamma in display terms)
	DefaultOutput      = "render.png"
	DefaultGIFDelay    = 10 // 100ths of a second per frame
	DefaultProbeRays   = 1000
	DefaultPreviewSize = 256

	// pipeline defaults
	DefaultInFlightPerWorker = 64

	AABBBVHMaxLeafSize  = 2
	AABBBVHFromNObjects = 8 // minimum number of objects to use BVH of AABBs, otherwise just iterate all objects on the scene

	RTreeMinChildren = 2
	RTreeMaxChildren = 8
)
