package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxGridCells bounds how many cells one body may occupy; larger bodies
// (ground planes, walls) are kept aside and tested against everything.
const maxGridCells = 512

type spatialGrid struct {
	cellSize  float32
	cells     map[uint64][]int
	oversized []int
}

func newSpatialGrid(cellSize float32) *spatialGrid {
	return &spatialGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int),
	}
}

func (g *spatialGrid) clear() {
	clear(g.cells)
	g.oversized = g.oversized[:0]
}

func (g *spatialGrid) insert(id int, lo, hi mgl32.Vec3) {
	minX, maxX := g.cellIndex(lo.X()), g.cellIndex(hi.X())
	minY, maxY := g.cellIndex(lo.Y()), g.cellIndex(hi.Y())
	minZ, maxZ := g.cellIndex(lo.Z()), g.cellIndex(hi.Z())

	span := (maxX - minX + 1) * (maxY - minY + 1) * (maxZ - minZ + 1)
	if span > maxGridCells || span <= 0 {
		g.oversized = append(g.oversized, id)
		return
	}

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := hashKey(x, y, z)
				g.cells[key] = append(g.cells[key], id)
			}
		}
	}
}

// query returns candidate ids whose cells touch the box, plus every
// oversized id. Results are unique.
func (g *spatialGrid) query(lo, hi mgl32.Vec3) []int {
	minX, maxX := g.cellIndex(lo.X()), g.cellIndex(hi.X())
	minY, maxY := g.cellIndex(lo.Y()), g.cellIndex(hi.Y())
	minZ, maxZ := g.cellIndex(lo.Z()), g.cellIndex(hi.Z())

	unique := make(map[int]struct{})
	var results []int
	add := func(id int) {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			results = append(results, id)
		}
	}

	span := (maxX - minX + 1) * (maxY - minY + 1) * (maxZ - minZ + 1)
	if span > maxGridCells || span <= 0 {
		// The query box itself is huge: fall back to every stored id.
		for _, ids := range g.cells {
			for _, id := range ids {
				add(id)
			}
		}
	} else {
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				for z := minZ; z <= maxZ; z++ {
					for _, id := range g.cells[hashKey(x, y, z)] {
						add(id)
					}
				}
			}
		}
	}
	for _, id := range g.oversized {
		add(id)
	}
	return results
}

func (g *spatialGrid) cellIndex(pos float32) int {
	return int(math.Floor(float64(pos / g.cellSize)))
}

func hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}

func overlaps(aMin, aMax, bMin, bMax mgl32.Vec3) bool {
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y() &&
		aMin.Z() <= bMax.Z() && aMax.Z() >= bMin.Z()
}
