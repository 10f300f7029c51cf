package rigid

import "errors"

var (
	ErrInvalidMaterial = errors.New("rigid: invalid material")
	ErrInvalidScene    = errors.New("rigid: invalid scene description")
	ErrInvalidShape    = errors.New("rigid: invalid shape")
	ErrInvalidMass     = errors.New("rigid: invalid mass properties")
	ErrInvalidDamping  = errors.New("rigid: invalid damping")
	ErrInvalidPose     = errors.New("rigid: invalid pose")
	ErrInvalidTimestep = errors.New("rigid: timestep must be positive and finite")
	ErrBodyInScene     = errors.New("rigid: body already belongs to a scene")
	ErrSceneReleased   = errors.New("rigid: scene has been released")

	ErrInvalidCookingParams = errors.New("rigid: invalid cooking parameters")
	ErrCookingTooFewPoints  = errors.New("rigid: convex cooking needs at least 4 points")
	ErrCookingDegenerate    = errors.New("rigid: degenerate input (coincident, colinear or coplanar)")
	ErrCookingVertexLimit   = errors.New("rigid: vertex count exceeds cooking limit")
	ErrCookingNonFinite     = errors.New("rigid: input contains NaN or Inf")
	ErrCookingIndices       = errors.New("rigid: malformed index buffer")
)
