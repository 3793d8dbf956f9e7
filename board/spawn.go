package board

import "math/rand/v2"

const (
	// FourProbability is the chance a new tile is a 4 rather than a 2.
	FourProbability = 0.1
	// SpawnThreshold is the empty-cell count above which a fresh game keeps
	// adding starting tiles.
	SpawnThreshold = 14
)

// RandomTileValue returns exponent 1 with probability 0.9 and exponent 2
// otherwise.
func RandomTileValue(rng *rand.Rand) uint8 {
	if rng.Float64() < FourProbability {
		return 2
	}
	return 1
}

// AddRandomTile places a 2 or a 4 on a uniformly chosen cell out of
// empties. It returns s unchanged if empties is empty.
func AddRandomTile(s State, empties []Position, rng *rand.Rand) State {
	if len(empties) == 0 {
		return s
	}
	p := empties[rng.IntN(len(empties))]
	return PlaceTile(s, p.Row, p.Col, RandomTileValue(rng))
}

// AddRandomTile is AddRandomTile using the engine's cached empty tiles.
func (e *Engine) AddRandomTile(s State, rng *rand.Rand) State {
	return AddRandomTile(s, e.EmptyTiles(s), rng)
}
