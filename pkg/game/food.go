package game

import (
	"math/rand/v2"
	"time"

	"github.com/cbodonnell/snake/pkg/game/types"
)

// FoodSpawner places food on a free cell using an injected random source.
type FoodSpawner struct {
	rng *rand.Rand
}

// NewFoodSpawner creates a spawner drawing from rng.
// Pass a seeded source for reproducible games.
func NewFoodSpawner(rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{rng: rng}
}

// NewSeededFoodSpawner creates a spawner with a PCG source built from seed.
func NewSeededFoodSpawner(seed uint64) *FoodSpawner {
	return NewFoodSpawner(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Spawn samples cells uniformly until it finds one that is not occupied.
// It returns false when every cell of the grid is occupied.
func (s *FoodSpawner) Spawn(occupied map[types.Cell]struct{}, gridSize int) (types.Cell, bool) {
	if len(occupied) >= gridSize*gridSize {
		return types.Cell{}, false
	}
	for {
		candidate := types.Cell{
			X: s.rng.IntN(gridSize),
			Y: s.rng.IntN(gridSize),
		}
		if _, ok := occupied[candidate]; !ok {
			return candidate, true
		}
	}
}

func timeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
