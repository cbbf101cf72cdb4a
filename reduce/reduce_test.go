package reduce_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-hpc/ember/launch"
	"github.com/ember-hpc/ember/reduce"
)

func TestSumEndToEnd(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	sum := reduce.Sum(eng, 0.0)
	defer sum.Close()

	err := eng.Launch(launch.Config{Grid: launch.Dim(8), Block: launch.Dim(64)},
		func(tc *launch.Thread) {
			sum.Replica(tc).Combine(0.5)
		}, sum)
	require.NoError(t, err)

	require.InDelta(t, 256.0, sum.Get(), 1e-9)
}

func TestSumAtomicMatchesStaged(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	staged := reduce.Sum[int64](eng, 0)
	defer staged.Close()
	atomic := reduce.SumAtomic[int64](eng, 0)
	defer atomic.Close()

	err := eng.Launch(launch.Config{Grid: launch.Dim(5), Block: launch.Dim(33)},
		func(tc *launch.Thread) {
			v := int64(tc.Global())
			staged.Replica(tc).Combine(v)
			atomic.Replica(tc).Combine(v)
		}, staged, atomic)
	require.NoError(t, err)

	require.Equal(t, staged.Get(), atomic.Get())
}

func TestMinMax(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	lo := reduce.Min(eng, math.Inf(1))
	defer lo.Close()
	hi := reduce.MaxAtomic(eng, math.Inf(-1))
	defer hi.Close()

	err := eng.Launch(launch.Config{Grid: launch.Dim(4), Block: launch.Dim(48)},
		func(tc *launch.Thread) {
			v := math.Cos(float64(tc.Global()))
			lo.Replica(tc).Combine(v)
			hi.Replica(tc).Combine(v)
		}, lo, hi)
	require.NoError(t, err)

	min, max := lo.Get(), hi.Get()
	require.LessOrEqual(t, min, max)
	require.GreaterOrEqual(t, min, -1.0)
	require.LessOrEqual(t, max, 1.0)
	require.InDelta(t, 1.0, max, 1e-9) // cos(0) is in the sample set
}

func TestMinLocEndToEnd(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	const blocks, lanes = 4, 40
	n := blocks * lanes

	lo := reduce.MinLoc(eng, math.Inf(1), -1)
	defer lo.Close()

	err := eng.Launch(launch.Config{Grid: launch.Dim(blocks), Block: launch.Dim(lanes)},
		func(tc *launch.Thread) {
			i := tc.Global()
			lo.Replica(tc).Combine(math.Abs(float64(i-n/2))+1, i)
		}, lo)
	require.NoError(t, err)

	require.Equal(t, 1.0, lo.Get())
	require.Equal(t, n/2, lo.GetLoc())
}

func TestHostOnlyUse(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	max := reduce.Max[int32](eng, 0)
	defer max.Close()
	max.Combine(9)
	max.Combine(3)

	require.Equal(t, int32(9), max.Get())
}

func TestRepeatedCapture(t *testing.T) {
	eng := launch.New()
	defer eng.Close()

	sum := reduce.Sum[int64](eng, 0)
	defer sum.Close()

	cfg := launch.Config{Grid: launch.Dim(2), Block: launch.Dim(32)}
	for range 4 {
		err := eng.Launch(cfg, func(tc *launch.Thread) {
			sum.Replica(tc).Combine(1)
		}, sum)
		require.NoError(t, err)
	}

	require.Equal(t, int64(4*64), sum.Get())
}
