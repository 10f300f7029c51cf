package pxhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialID_String(t *testing.T) {
	assert.Equal(t, "wood", Wood.String())
	assert.Equal(t, "hollow_steel", HollowSteel.String())
	assert.Equal(t, "MaterialID(42)", MaterialID(42).String())
	assert.False(t, MaterialID(-1).Valid())
	assert.False(t, materialCount.Valid())
}

func TestParseMaterialID(t *testing.T) {
	for _, id := range MaterialIDs() {
		got, err := ParseMaterialID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	got, err := ParseMaterialID("  Solid_PVC ")
	require.NoError(t, err)
	assert.Equal(t, SolidPVC, got)

	_, err = ParseMaterialID("rubber")
	assert.ErrorIs(t, err, ErrInvalidMaterial)
}

func TestMaterialIDs(t *testing.T) {
	assert.Equal(t, []MaterialID{Wood, SolidPVC, HollowPVC, SolidSteel, HollowSteel, Concrete}, MaterialIDs())
	assert.Len(t, DefaultMaterialCatalog(), len(MaterialIDs()))
}

func TestMaterialRegistry(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := newMaterialRegistry(nil)
		require.NoError(t, err)
		for _, id := range MaterialIDs() {
			m, err := r.lookup(id)
			require.NoError(t, err)
			want := DefaultMaterialCatalog()[id.String()]
			assert.Equal(t, want.StaticFriction, m.StaticFriction(), id.String())
			assert.Equal(t, want.DynamicFriction, m.DynamicFriction(), id.String())
			assert.Equal(t, want.Restitution, m.Restitution(), id.String())
		}
	})

	t.Run("override", func(t *testing.T) {
		r, err := newMaterialRegistry(map[string]MaterialProperties{
			"Concrete": {StaticFriction: 1, DynamicFriction: 0.9, Restitution: 0},
		})
		require.NoError(t, err)
		p, ok := r.properties(Concrete)
		require.True(t, ok)
		assert.Equal(t, float32(1), p.StaticFriction)

		// Others keep their defaults.
		p, _ = r.properties(Wood)
		assert.Equal(t, DefaultMaterialCatalog()["wood"], p)
	})

	t.Run("unknown override name", func(t *testing.T) {
		_, err := newMaterialRegistry(map[string]MaterialProperties{"rubber": {}})
		assert.ErrorIs(t, err, ErrInvalidMaterial)
	})

	t.Run("invalid coefficients", func(t *testing.T) {
		_, err := newMaterialRegistry(map[string]MaterialProperties{"wood": {Restitution: 2}})
		assert.Error(t, err)
	})

	t.Run("lookup out of range", func(t *testing.T) {
		r, err := newMaterialRegistry(nil)
		require.NoError(t, err)
		m, err := r.lookup(MaterialID(99))
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ErrInvalidMaterial)
	})
}
