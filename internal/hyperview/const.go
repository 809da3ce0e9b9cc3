package hyperview

// Real is the scalar type used by all geometry.
type Real = float64

const (
	DefaultFOVDeg     = 45.0
	DefaultNear       = 1.0 / 16 // near hyperplane depth in camera space
	DefaultSafetyHalf = 5.0      // half-extent of the numeric-safety cube
	DefaultImageSize  = 512
	DefaultFrames     = 72
	DefaultGIFDelay   = 4 // 100ths of a second per frame
	DefaultPointScale = 0.04
	GIFOut            = "hyperview.gif"

	// numeric tolerances
	epsDegenerate       = 1e-10 // relative magnitude below which cross4 is degenerate
	clipEpsilon         = 1e-9  // slack keeping near-plane intersections in front
	hullEpsilon         = 1e-9  // relative plane distance tolerance for hull tests
	singularDet         = 1e-9  // |det| below which a plane triple is skipped
	maxSafetyClipPoints = 64    // beyond this the O(n^3) supporting-plane search is skipped
	maxSafetyClipPlanes = 96
	dedupeQuantum       = 1e6 // grid used to merge near-coincident clip vertices
)
