package automatic

import (
	"strconv"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// BaseSeed returns seed, or a fresh random one if seed is 0.
func BaseSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = frand.Uint64n(^uint64(0))
	}
	return seed
}

// GameSeed derives the seed of one benchmark game. Each player sees the
// same sequence of seeds for a given base, so their games are comparable
// as far as the spawns allow.
func GameSeed(base uint64, gameIdx int) uint64 {
	s := xxhash.Sum64String(strconv.Itoa(gameIdx)) ^ base
	if s == 0 {
		s = base
	}
	return s
}

// PlayerSeed derives the seed of a player's own random choices in one game.
func PlayerSeed(base uint64, playerName string, gameIdx int) uint64 {
	return xxhash.Sum64String(playerName+"/"+strconv.Itoa(gameIdx)) ^ base
}
