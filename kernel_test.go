package resampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pcm-resampler/internal/fixed"
	"github.com/tphakala/go-pcm-resampler/internal/testutil"
)

// TestPrecompute_CenterIsUnity verifies that the table's exact centre holds
// the fixed-point representation of 1.0.
func TestPrecompute_CenterIsUnity(t *testing.T) {
	table := Precompute()

	center := kernelTableSize / 2
	assert.Equal(t, int32(fixed.One), table.gains[center])
}

// TestPrecompute_Symmetry verifies that the table mirrors about its centre,
// as sampling an even function must produce.
func TestPrecompute_Symmetry(t *testing.T) {
	table := Precompute()

	testutil.AssertSymmetricInt32(t, table.gains[:], testutil.FixedPointTolerance)
}

// TestPrecompute_ZeroCrossings verifies that the window is zero at every
// nonzero integer lobe offset, which is what makes identity-rate
// resampling lossless.
func TestPrecompute_ZeroCrossings(t *testing.T) {
	table := Precompute()

	for offset := -KernelRadius; offset <= KernelRadius; offset++ {
		if offset == 0 {
			continue
		}
		index := kernelTableSize/2 + offset*KernelResolution
		if index == kernelTableSize {
			// x = +RADIUS falls just past the table's last entry.
			continue
		}
		assert.Equal(t, int32(0), table.gains[index], "offset %d lobes", offset)
	}
}

// TestPrecompute_GainsBounded verifies that no gain exceeds unity in
// magnitude; the Lanczos window peaks at exactly 1.
func TestPrecompute_GainsBounded(t *testing.T) {
	table := Precompute()

	for i, gain := range table.gains {
		require.LessOrEqual(t, gain, int32(fixed.One), "index %d", i)
		require.GreaterOrEqual(t, gain, int32(-fixed.One), "index %d", i)
	}
}

// TestPrecompute_Deterministic verifies that repeated precomputation yields
// identical tables, making them safe to memoize.
func TestPrecompute_Deterministic(t *testing.T) {
	first := Precompute()
	second := Precompute()

	assert.Equal(t, first.gains, second.gains)
}

// TestGains_ReturnsCopy verifies that callers cannot mutate the shared
// table through the accessor.
func TestGains_ReturnsCopy(t *testing.T) {
	table := Precompute()

	gains := table.Gains()
	require.Len(t, gains, kernelTableSize)

	gains[0] = 12345
	assert.NotEqual(t, int32(12345), table.Gains()[0])
}
