package pxhost

import "errors"

var (
	// ErrNoScene is returned by every operation of an engine whose
	// initialization failed.
	ErrNoScene          = errors.New("pxhost: engine has no scene")
	ErrClosed           = errors.New("pxhost: engine closed")
	ErrInvalidMaterial  = errors.New("pxhost: invalid material")
	ErrInvalidGeometry  = errors.New("pxhost: invalid geometry")
	ErrInvalidMass      = errors.New("pxhost: invalid mass properties")
	ErrInvalidDamping   = errors.New("pxhost: invalid damping")
	ErrInvalidAero      = errors.New("pxhost: invalid aerodynamic coefficients")
	ErrInvalidPose      = errors.New("pxhost: invalid pose")
	ErrCookingFailed    = errors.New("pxhost: cooking failed")
	ErrActorNotFound    = errors.New("pxhost: actor not found")
	ErrInvalidFrequency = errors.New("pxhost: frequency out of range")
	ErrStepFailed       = errors.New("pxhost: simulation step failed")
	ErrInvalidConfig    = errors.New("pxhost: invalid config")
)
