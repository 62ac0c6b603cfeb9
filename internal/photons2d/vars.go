package photons2d

var (
	Debug           = false // set to true for verbose debug output and ray statistics
	ForceSequential = false // set to true to render with the single-threaded reference loop
	AlwaysBVH       = false // set to true to always use BVH for nearest hit calculations
	NeverBVH        = false // set to true to never use BVH for nearest hit calculations
	DumpTree        = false // set to true to print the scene BVH before rendering
	// Compile time checks
	_ Material  = HQZLegacy{}
	_ Object    = (*Line)(nil)
	_ Object    = (*Curve)(nil)
	_ Renderer  = Sequential{}
	_ Renderer  = Pipeline{}
	_ hitFinder = objectList(nil)
	_ hitFinder = (*objectBVH)(nil)
	_ hitFinder = (*objectRTree)(nil)
)
