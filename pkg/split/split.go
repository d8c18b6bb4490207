// Package split partitions a dataset into train/val/test subsets
package split

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cyclopcam/solo2yolo/pkg/yolo"
)

// Tolerance of the check that the three fractions sum to 1
const SumTolerance = 1e-6

// Fractions of the dataset that go into each split
type Fractions struct {
	Train float64
	Val   float64
	Test  float64
}

// DefaultFractions is an 80/10/10 split
var DefaultFractions = Fractions{Train: 0.8, Val: 0.1, Test: 0.1}

// Validate checks that each fraction is in [0,1], and that they sum to 1
func (f Fractions) Validate() error {
	for _, v := range []float64{f.Train, f.Val, f.Test} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("Split fractions must be between 0 and 1 (train=%v, val=%v, test=%v)", f.Train, f.Val, f.Test)
		}
	}
	if math.Abs(f.Train+f.Val+f.Test-1) > SumTolerance {
		return fmt.Errorf("train+val+test must sum to 1.0 (got %v)", f.Train+f.Val+f.Test)
	}
	return nil
}

// Counts returns the number of items in the train and val splits, for a dataset of n items.
// The test split takes the remainder, so rounding never drops an item.
func (f Fractions) Counts(n int) (nTrain, nVal int) {
	nTrain = int(float64(n) * f.Train)
	nVal = int(float64(n) * f.Val)
	// Guard against fractions that sum slightly above 1
	nTrain = min(nTrain, n)
	nVal = min(nVal, n-nTrain)
	return
}

// Assign shuffles 'items' in place with a generator seeded by 'seed', and cuts it into splits.
// The result is a pure function of seed and the order of 'items'.
func Assign[T any](items []T, f Fractions, seed int64) map[yolo.Split][]T {
	return AssignWithRand(items, f, rand.New(rand.NewSource(seed)))
}

// AssignWithRand is Assign with an explicit random number generator
func AssignWithRand[T any](items []T, f Fractions, rng *rand.Rand) map[yolo.Split][]T {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	nTrain, nVal := f.Counts(len(items))
	return map[yolo.Split][]T{
		yolo.SplitTrain: items[:nTrain],
		yolo.SplitVal:   items[nTrain : nTrain+nVal],
		yolo.SplitTest:  items[nTrain+nVal:],
	}
}
