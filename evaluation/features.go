package evaluation

import "github.com/domino14/game2048/board"

const (
	FeatureEmptyCells   = "empty-cells"
	FeatureMonotonicity = "monotonicity"
	FeatureSmoothness   = "smoothness"
	FeatureMaxTile      = "max-tile"

	FeatureMergeability    = "mergeability"
	FeatureCornerValue     = "corner-value"
	FeaturePatternMatching = "pattern-matching"
)

// featureScale is the upper bound of the normalized features.
const featureScale = 1000.0

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// EmptyCells counts the cells holding no tile.
func EmptyCells(cells *[board.NumCells]uint8) float64 {
	n := 0
	for _, e := range cells {
		if e == 0 {
			n++
		}
	}
	return float64(n)
}

// Monotonicity is the negated sum of exponent differences between every
// pair of horizontal and vertical neighbours, 24 pairs in all. Empty cells
// count as exponent 0.
func Monotonicity(cells *[board.NumCells]uint8) float64 {
	total := 0
	for i := range board.Dim {
		for j := 0; j < board.Dim-1; j++ {
			total += absDiff(int(cells[i*board.Dim+j]), int(cells[i*board.Dim+j+1]))
			total += absDiff(int(cells[j*board.Dim+i]), int(cells[(j+1)*board.Dim+i]))
		}
	}
	return -float64(total)
}

// Smoothness is the negated sum of face-value differences between
// horizontal and vertical neighbours that both hold a tile.
func Smoothness(cells *[board.NumCells]uint8) float64 {
	total := 0
	for r := range board.Dim {
		for c := range board.Dim {
			e := cells[r*board.Dim+c]
			if e == 0 {
				continue
			}
			v := board.FaceValue(e)
			if c < board.Dim-1 {
				if n := cells[r*board.Dim+c+1]; n != 0 {
					total += absDiff(v, board.FaceValue(n))
				}
			}
			if r < board.Dim-1 {
				if n := cells[(r+1)*board.Dim+c]; n != 0 {
					total += absDiff(v, board.FaceValue(n))
				}
			}
		}
	}
	return -float64(total)
}

// MaxTile is the largest exponent on the board.
func MaxTile(cells *[board.NumCells]uint8) float64 {
	var m uint8
	for _, e := range cells {
		m = max(m, e)
	}
	return float64(m)
}

// Mergeability counts, row by row, the tiles that belong to a run of equal
// tiles. Empty cells between two equal tiles do not break the run.
func Mergeability(cells *[board.NumCells]uint8) float64 {
	merges := 0
	for r := range board.Dim {
		var prev uint8
		run := 0
		for c := range board.Dim {
			e := cells[r*board.Dim+c]
			if e == 0 {
				continue
			}
			if e == prev {
				run++
			} else if run > 0 {
				merges += 1 + run
				run = 0
			}
			prev = e
		}
		if run > 0 {
			merges += 1 + run
		}
	}
	return float64(merges)
}

// CornerValue rewards large tiles close to any corner. Each tile adds its
// face value scaled by (6 - distance to the nearest corner) / 6, and the
// total is normalized against four corners holding the largest tile,
// capped at 1000.
func CornerValue(cells *[board.NumCells]uint8) float64 {
	top := MaxTile(cells)
	if top == 0 {
		return 0
	}
	score := 0.0
	for r := range board.Dim {
		for c := range board.Dim {
			e := cells[r*board.Dim+c]
			if e == 0 {
				continue
			}
			dist := min(r, board.Dim-1-r) + min(c, board.Dim-1-c)
			score += float64(board.FaceValue(e)) * float64(6-dist) / 6
		}
	}
	return min(featureScale, score*featureScale/(float64(board.FaceValue(uint8(top)))*4))
}

// snakeWeights ranks the cells along a snake starting at the top-left.
var snakeWeights = [board.NumCells]int{
	15, 14, 13, 12,
	8, 9, 10, 11,
	7, 6, 5, 4,
	0, 1, 2, 3,
}

const snakeWeightSum = 120

// PatternMatching is the snake-weighted sum of face values, normalized
// against the largest tile filling every cell, capped at 1000.
func PatternMatching(cells *[board.NumCells]uint8) float64 {
	top := uint8(MaxTile(cells))
	maxScore := 2048.0
	if top > 1 {
		maxScore = float64(board.FaceValue(top)) * snakeWeightSum
	}
	score := 0
	for i, e := range cells {
		if e != 0 {
			score += board.FaceValue(e) * snakeWeights[i]
		}
	}
	return min(featureScale, float64(score)*featureScale/maxScore)
}
