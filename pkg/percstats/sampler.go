package percstats

import (
	"fmt"

	"percolation/pkg/percolation"
)

// Source 是均匀随机整数源，返回 [0, n) 内的整数
// *math/rand/v2.Rand 直接满足这个接口
type Source interface {
	IntN(n int) int
}

// SamplerKind 选择随机关闭格点的方式，实现了 pflag.Value
type SamplerKind string

const (
	// 随机抽坐标，抽中已打开的格点就重抽
	SamplerRejection SamplerKind = "rejection"
	// 维护关闭格点集合，抽中后交换删除，每次抽样 O(1)
	SamplerShuffle SamplerKind = "shuffle"
)

func (k *SamplerKind) String() string { return string(*k) }

func (k *SamplerKind) Set(val string) error {
	switch SamplerKind(val) {
	case SamplerRejection, SamplerShuffle:
		*k = SamplerKind(val)
		return nil
	default:
		return fmt.Errorf("无效的抽样方式: %s (rejection|shuffle)", val)
	}
}

func (k *SamplerKind) Type() string {
	return "sampler"
}

// 列出所有的合法值
func (SamplerKind) Values() []string {
	return []string{
		string(SamplerRejection),
		string(SamplerShuffle),
	}
}

// sampler 每次返回一个当前仍然关闭的格点
type sampler interface {
	next() (row, col int)
}

func newSampler(kind SamplerKind, p *percolation.Percolation, src Source) sampler {
	if kind == SamplerShuffle {
		return newShuffleSampler(p.N(), src)
	}
	return &rejectionSampler{p: p, src: src}
}

type rejectionSampler struct {
	p   *percolation.Percolation
	src Source
}

func (s *rejectionSampler) next() (int, int) {
	n := s.p.N()
	for {
		row, col := s.src.IntN(n)+1, s.src.IntN(n)+1
		// 坐标由 IntN 生成，必定合法
		if open, _ := s.p.IsOpen(row, col); !open {
			return row, col
		}
	}
}

// shuffleSampler 记录所有还没被抽到的格点，抽到即移除，
// 所以它只适用于只通过它来打开格点的网格
type shuffleSampler struct {
	n      int
	closed []int
	src    Source
}

func newShuffleSampler(n int, src Source) *shuffleSampler {
	closed := make([]int, n*n)
	for i := range closed {
		closed[i] = i
	}
	return &shuffleSampler{n: n, closed: closed, src: src}
}

func (s *shuffleSampler) next() (int, int) {
	last := len(s.closed) - 1
	i := s.src.IntN(last + 1)
	site := s.closed[i]
	s.closed[i] = s.closed[last]
	s.closed = s.closed[:last]
	return site/s.n + 1, site%s.n + 1
}
