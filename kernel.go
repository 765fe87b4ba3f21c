package resampler

import (
	"math"

	"github.com/tphakala/go-pcm-resampler/internal/fixed"
)

// KernelTable holds one period of the Lanczos-windowed sinc function,
// sampled at KernelResolution points per lobe and stored as signed 16.16
// gains.
//
// A table is immutable once built and may be shared by any number of
// resampler instances on any number of goroutines.
type KernelTable struct {
	gains [kernelTableSize]int32
}

// Precompute builds the Lanczos kernel table.
//
// The output is a pure function of KernelRadius and KernelResolution, so a
// single table can be built once at startup and reused for the lifetime of
// the process.
func Precompute() *KernelTable {
	table := new(KernelTable)
	for i := range table.gains {
		x := (float64(i)/float64(kernelTableSize)*2 - 1) * KernelRadius
		table.gains[i] = int32(fixed.FromFloat(lanczos(x)))
	}
	return table
}

// Gains returns a copy of the table's 16.16 gain values, for analysis and
// inspection.
func (t *KernelTable) Gains() []int32 {
	gains := make([]int32, len(t.gains))
	copy(gains, t.gains[:])
	return gains
}

// lanczos evaluates the Lanczos window of radius KernelRadius at x.
// Callers guarantee |x| <= KernelRadius by construction of the table index
// range.
func lanczos(x float64) float64 {
	if x == 0 {
		return 1
	}

	xTimesPi := x * math.Pi
	xTimesPiOverRadius := xTimesPi / KernelRadius

	return math.Sin(xTimesPi) * math.Sin(xTimesPiOverRadius) / (xTimesPi * xTimesPiOverRadius)
}
