package percstats

import (
	"testing"

	"percolation/pkg/errorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptSource 按顺序返回预先写好的值
type scriptSource struct {
	t      *testing.T
	values []int
}

func (s *scriptSource) IntN(n int) int {
	require.NotEmpty(s.t, s.values, "随机源已用完")
	v := s.values[0]
	s.values = s.values[1:]
	require.Less(s.t, v, n)
	return v
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name      string
		n, trials int
	}{
		{"zero size", 0, 10},
		{"negative size", -3, 10},
		{"zero trials", 5, 0},
		{"negative trials", 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := New(tt.n, tt.trials, WithSeed(1))
			assert.Nil(t, st)
			assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
		})
	}
}

func TestSingleSiteSingleTrial(t *testing.T) {
	for _, kind := range []SamplerKind{SamplerRejection, SamplerShuffle} {
		t.Run(string(kind), func(t *testing.T) {
			st, err := New(1, 1, WithSeed(3), WithSampler(kind))
			require.NoError(t, err)

			assert.Equal(t, 1.0, st.Mean())
			assert.Equal(t, 0.0, st.StdDev())
			assert.Equal(t, 1.0, st.ConfidenceLow())
			assert.Equal(t, 1.0, st.ConfidenceHigh())
			assert.Equal(t, []float64{1}, st.Samples())
		})
	}
}

func TestSingleSiteManyTrials(t *testing.T) {
	st, err := New(1, 5, WithSeed(3))
	require.NoError(t, err)

	assert.Equal(t, 5, st.Trials())
	assert.Equal(t, 1, st.N())
	assert.Equal(t, 1.0, st.Mean())
	assert.Equal(t, 0.0, st.StdDev())
}

func TestRejectionSamplerRedraws(t *testing.T) {
	// (1,1) -> (1,1) 重抽 -> (2,1)，两次打开后渗透
	src := &scriptSource{t: t, values: []int{0, 0, 0, 0, 1, 0}}
	st, err := New(2, 1, WithSource(src), WithSampler(SamplerRejection))
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5}, st.Samples())
	assert.Empty(t, src.values)
}

func TestShuffleSamplerSwapRemove(t *testing.T) {
	// 关闭集合 [0 1 2 3]: 取 0 -> [3 1 2]: 取 3 -> [2 1]: 取 2
	// 依次打开 (1,1) (2,2) (2,1)
	src := &scriptSource{t: t, values: []int{0, 0, 0}}
	st, err := New(2, 1, WithSource(src), WithSampler(SamplerShuffle))
	require.NoError(t, err)

	assert.Equal(t, []float64{0.75}, st.Samples())
}

func TestShuffleSamplerVisitsEverySiteOnce(t *testing.T) {
	const n = 6
	src := &scriptSource{t: t}
	for i := n * n; i > 0; i-- {
		src.values = append(src.values, i/2)
	}
	s := newShuffleSampler(n, src)

	seen := make(map[[2]int]bool)
	for i := 0; i < n*n; i++ {
		row, col := s.next()
		require.True(t, row >= 1 && row <= n && col >= 1 && col <= n)
		site := [2]int{row, col}
		require.False(t, seen[site], "格点 %v 被抽到两次", site)
		seen[site] = true
	}
	assert.Len(t, seen, n*n)
}

func TestThresholdEstimate(t *testing.T) {
	for _, kind := range []SamplerKind{SamplerRejection, SamplerShuffle} {
		t.Run(string(kind), func(t *testing.T) {
			st, err := New(20, 200, WithSeed(20240601), WithSampler(kind))
			require.NoError(t, err)

			assert.GreaterOrEqual(t, st.Mean(), 0.55)
			assert.LessOrEqual(t, st.Mean(), 0.65)
			assert.Greater(t, st.StdDev(), 0.0)

			assert.LessOrEqual(t, st.ConfidenceLow(), st.Mean())
			assert.LessOrEqual(t, st.Mean(), st.ConfidenceHigh())

			assert.LessOrEqual(t, st.Min(), st.Median())
			assert.LessOrEqual(t, st.Median(), st.Max())
			assert.Len(t, st.Samples(), 200)
		})
	}
}

func TestSameSeedSameSamples(t *testing.T) {
	a, err := New(8, 10, WithSeed(99))
	require.NoError(t, err)
	b, err := New(8, 10, WithSeed(99))
	require.NoError(t, err)

	assert.Equal(t, a.Samples(), b.Samples())
	assert.Equal(t, a.Mean(), b.Mean())
}

func TestSamplesIsCopy(t *testing.T) {
	st, err := New(3, 4, WithSeed(5))
	require.NoError(t, err)

	got := st.Samples()
	got[0] = -1
	assert.NotEqual(t, -1.0, st.Samples()[0])
}

func TestSamplerKindFlag(t *testing.T) {
	var k SamplerKind
	require.NoError(t, k.Set("shuffle"))
	assert.Equal(t, SamplerShuffle, k)
	assert.Equal(t, "shuffle", k.String())
	assert.Equal(t, "sampler", k.Type())

	assert.Error(t, k.Set("random"))
	assert.Equal(t, SamplerShuffle, k)
	assert.Equal(t, []string{"rejection", "shuffle"}, k.Values())
}
