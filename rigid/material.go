package rigid

import "fmt"

// Material holds the surface coefficients used when two shapes touch.
// Materials are immutable once created.
type Material struct {
	staticFriction  float32
	dynamicFriction float32
	restitution     float32
}

// NewMaterial validates and creates a material. Friction coefficients must be
// non-negative and restitution must lie in [0, 1].
func NewMaterial(staticFriction, dynamicFriction, restitution float32) (*Material, error) {
	if !finite(staticFriction) || !finite(dynamicFriction) || !finite(restitution) {
		return nil, fmt.Errorf("%w: non-finite coefficient", ErrInvalidMaterial)
	}
	if staticFriction < 0 || dynamicFriction < 0 {
		return nil, fmt.Errorf("%w: negative friction (%g, %g)", ErrInvalidMaterial, staticFriction, dynamicFriction)
	}
	if restitution < 0 || restitution > 1 {
		return nil, fmt.Errorf("%w: restitution %g outside [0,1]", ErrInvalidMaterial, restitution)
	}
	return &Material{
		staticFriction:  staticFriction,
		dynamicFriction: dynamicFriction,
		restitution:     restitution,
	}, nil
}

func (m *Material) StaticFriction() float32  { return m.staticFriction }
func (m *Material) DynamicFriction() float32 { return m.dynamicFriction }
func (m *Material) Restitution() float32     { return m.restitution }

// combine averages the coefficients of two touching materials.
func combine(a, b *Material) (staticFriction, dynamicFriction, restitution float32) {
	return (a.staticFriction + b.staticFriction) * 0.5,
		(a.dynamicFriction + b.dynamicFriction) * 0.5,
		(a.restitution + b.restitution) * 0.5
}
