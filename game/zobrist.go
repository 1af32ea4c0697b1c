package game

import "golang.org/x/exp/rand"

// Zobrist keys shared by both board backends so that the same position
// hashes identically regardless of representation. The table is seeded
// with a fixed constant: hashes must be stable across processes for the
// tests that compare backends.
var (
	zobristCell [BoardN * BoardN][2]uint64
	zobristBlue uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x7e77e55))
	for i := range zobristCell {
		zobristCell[i][0] = rng.Uint64()
		zobristCell[i][1] = rng.Uint64()
	}
	zobristBlue = rng.Uint64()
}

func zobristKey(c Coord, color PlayerColor) uint64 {
	return zobristCell[c.Index()][color-1]
}
