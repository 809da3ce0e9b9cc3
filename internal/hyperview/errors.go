package hyperview

import "github.com/pkg/errors"

var (
	// ErrDegenerateBasis is returned when viewing-frame vectors are collinear,
	// parallel or coincident. It indicates a camera configuration bug.
	ErrDegenerateBasis = errors.New("degenerate basis")
	// ErrUnknownPolytope is returned for a catalogue name that does not exist.
	ErrUnknownPolytope = errors.New("unknown polytope")
	// ErrInvalidScene wraps every scene validation failure.
	ErrInvalidScene = errors.New("invalid scene")
)
