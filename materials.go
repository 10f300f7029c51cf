package pxhost

import (
	"fmt"
	"strings"

	"github.com/gekko3d/pxhost/rigid"
)

// MaterialID names one entry of the fixed material catalog.
type MaterialID int

const (
	Wood MaterialID = iota
	SolidPVC
	HollowPVC
	SolidSteel
	HollowSteel
	Concrete

	materialCount
)

var materialNames = [materialCount]string{
	Wood:        "wood",
	SolidPVC:    "solid_pvc",
	HollowPVC:   "hollow_pvc",
	SolidSteel:  "solid_steel",
	HollowSteel: "hollow_steel",
	Concrete:    "concrete",
}

func (id MaterialID) Valid() bool { return id >= 0 && id < materialCount }

func (id MaterialID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("MaterialID(%d)", int(id))
	}
	return materialNames[id]
}

// ParseMaterialID accepts the names produced by String, case-insensitively.
func ParseMaterialID(name string) (MaterialID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for id, s := range materialNames {
		if s == n {
			return MaterialID(id), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrInvalidMaterial, name)
}

// MaterialIDs lists the catalog in declaration order.
func MaterialIDs() []MaterialID {
	ids := make([]MaterialID, 0, materialCount)
	for id := MaterialID(0); id < materialCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

type MaterialProperties struct {
	StaticFriction  float32 `yaml:"static_friction"`
	DynamicFriction float32 `yaml:"dynamic_friction"`
	Restitution     float32 `yaml:"restitution"`
}

// DefaultMaterialCatalog returns the built-in coefficients keyed by name.
func DefaultMaterialCatalog() map[string]MaterialProperties {
	return map[string]MaterialProperties{
		Wood.String():        {StaticFriction: 0.45, DynamicFriction: 0.35, Restitution: 0.55},
		SolidPVC.String():    {StaticFriction: 0.40, DynamicFriction: 0.30, Restitution: 0.70},
		HollowPVC.String():   {StaticFriction: 0.40, DynamicFriction: 0.30, Restitution: 0.55},
		SolidSteel.String():  {StaticFriction: 0.74, DynamicFriction: 0.57, Restitution: 0.60},
		HollowSteel.String(): {StaticFriction: 0.74, DynamicFriction: 0.57, Restitution: 0.45},
		Concrete.String():    {StaticFriction: 0.62, DynamicFriction: 0.55, Restitution: 0.20},
	}
}

// materialRegistry holds the library materials built once at engine start.
// It is never mutated afterwards and may be read without the engine lock.
type materialRegistry struct {
	props [materialCount]MaterialProperties
	mtls  [materialCount]*rigid.Material
}

// newMaterialRegistry resolves every catalog entry. Entries missing from
// overrides fall back to the defaults.
func newMaterialRegistry(overrides map[string]MaterialProperties) (*materialRegistry, error) {
	r := &materialRegistry{}
	defaults := DefaultMaterialCatalog()
	for _, id := range MaterialIDs() {
		r.props[id] = defaults[id.String()]
	}
	for name, p := range overrides {
		id, err := ParseMaterialID(name)
		if err != nil {
			return nil, err
		}
		r.props[id] = p
	}

	for _, id := range MaterialIDs() {
		p := r.props[id]
		m, err := rigid.NewMaterial(p.StaticFriction, p.DynamicFriction, p.Restitution)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", id, err)
		}
		r.mtls[id] = m
	}
	return r, nil
}

func (r *materialRegistry) lookup(id MaterialID) (*rigid.Material, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaterial, int(id))
	}
	return r.mtls[id], nil
}

func (r *materialRegistry) properties(id MaterialID) (MaterialProperties, bool) {
	if !id.Valid() {
		return MaterialProperties{}, false
	}
	return r.props[id], true
}
