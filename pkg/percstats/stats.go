// Package percstats 用蒙特卡洛方法估计渗流阈值。
//
// 每次试验在新的 n×n 网格上随机打开关闭的格点，直到系统渗透，
// 记录此时打开格点所占的比例。全部试验结束后计算均值、样本标准差
// 和 95% 置信区间，之后的访问都是 O(1)。
package percstats

import (
	"math"
	"math/rand/v2"
	"time"

	"percolation/pkg/errorutil"
	"percolation/pkg/logutil"
	"percolation/pkg/percolation"
	"percolation/pkg/toolutil"
)

// 95% 置信区间对应的正态分位数
const confidence95 = 1.96

type options struct {
	src     Source
	sampler SamplerKind
}

type Option func(*options)

// WithSource 指定随机源，测试里用来固定结果
func WithSource(src Source) Option {
	return func(o *options) { o.src = src }
}

// WithSeed 使用固定种子的 PCG 随机源
func WithSeed(seed uint64) Option {
	return func(o *options) { o.src = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithSampler(kind SamplerKind) Option {
	return func(o *options) { o.sampler = kind }
}

type Stats struct {
	n       int
	trials  int
	samples []float64

	mean   float64
	stddev float64
	low    float64
	high   float64
	min    float64
	max    float64
	median float64
}

// New 在 n×n 网格上做 trials 次独立试验
func New(n, trials int, opts ...Option) (*Stats, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgument("网格尺寸必须为正数: %d", n)
	}
	if trials <= 0 {
		return nil, errorutil.InvalidArgument("试验次数必须为正数: %d", trials)
	}

	o := options{sampler: SamplerRejection}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	logutil.Debug("开始 %d 次试验: n=%d sampler=%s", trials, n, o.sampler)

	openCounts := make([]int, trials)
	for i := range openCounts {
		count, err := runTrial(n, o.sampler, o.src)
		if err != nil {
			return nil, err
		}
		openCounts[i] = count
		logutil.Debug("第 %d 次试验: 打开 %d 个格点后渗透", i+1, count)
	}

	sites := float64(n * n)
	counts := toolutil.StreamOf(openCounts)
	return summarize(n, toolutil.Map(counts, func(c int) float64 {
		return float64(c) / sites
	})), nil
}

// runTrial 返回渗透时已打开的格点数
func runTrial(n int, kind SamplerKind, src Source) (int, error) {
	p, err := percolation.New(n)
	if err != nil {
		return 0, err
	}

	s := newSampler(kind, p, src)
	for !p.Percolates() {
		row, col := s.next()
		if err := p.Open(row, col); err != nil {
			return 0, err
		}
	}
	return p.NumberOfOpenSites(), nil
}

func summarize(n int, s toolutil.Stream[float64]) *Stats {
	st := &Stats{
		n:       n,
		trials:  s.Count(),
		samples: s.ToSlice(),
	}

	st.mean, _ = toolutil.Average(s)
	// 只有一次试验时方差没有定义，这里按 0 处理，置信区间收缩为均值
	if sd, ok := toolutil.StdDev(s); ok {
		st.stddev = sd
	}
	half := confidence95 * st.stddev / math.Sqrt(float64(st.trials))
	st.low = st.mean - half
	st.high = st.mean + half

	st.min, _ = toolutil.Min(s)
	st.max, _ = toolutil.Max(s)
	st.median, _ = toolutil.Median(s)
	return st
}

// Mean 渗流阈值的样本均值
func (s *Stats) Mean() float64 { return s.mean }

// StdDev 渗流阈值的样本标准差
func (s *Stats) StdDev() float64 { return s.stddev }

// ConfidenceLow 95% 置信区间下界
func (s *Stats) ConfidenceLow() float64 { return s.low }

// ConfidenceHigh 95% 置信区间上界
func (s *Stats) ConfidenceHigh() float64 { return s.high }

func (s *Stats) N() int      { return s.n }
func (s *Stats) Trials() int { return s.trials }

func (s *Stats) Min() float64    { return s.min }
func (s *Stats) Max() float64    { return s.max }
func (s *Stats) Median() float64 { return s.median }

// Samples 返回每次试验的阈值估计(拷贝)
func (s *Stats) Samples() []float64 {
	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	return out
}
