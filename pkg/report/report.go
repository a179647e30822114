// Package report 把模拟结果整理成一个有序的 JSON 文档，再按需要的
// 格式(txt / json / sh)输出。
package report

import (
	"fmt"
	"time"

	"percolation/pkg/percolation"
	"percolation/pkg/percstats"

	"github.com/tidwall/sjson"
)

// docBuilder 依次写入键值，sjson 追加新键时保持写入顺序
type docBuilder struct {
	raw string
	err error
}

func (b *docBuilder) set(path string, value any) {
	if b.err != nil {
		return
	}
	b.raw, b.err = sjson.Set(b.raw, path, value)
}

func (b *docBuilder) done() (string, error) {
	if b.err != nil {
		return "", fmt.Errorf("生成结果文档失败: %w", b.err)
	}
	return b.raw, nil
}

type StatsOptions struct {
	Sampler percstats.SamplerKind
	Seed    uint64
	Elapsed time.Duration
	// 是否输出每次试验的样本
	WithSamples bool
}

// StatsDocument 统计结果的文档，键的顺序就是输出顺序
func StatsDocument(st *percstats.Stats, opts StatsOptions) (string, error) {
	b := &docBuilder{raw: "{}"}
	b.set("n", st.N())
	b.set("trials", st.Trials())
	b.set("sites", st.N()*st.N())
	if opts.Sampler != "" {
		b.set("sampler", string(opts.Sampler))
	}
	if opts.Seed != 0 {
		b.set("seed", opts.Seed)
	}
	b.set("mean", st.Mean())
	b.set("stddev", st.StdDev())
	b.set("confidence_low", st.ConfidenceLow())
	b.set("confidence_high", st.ConfidenceHigh())
	b.set("min", st.Min())
	b.set("median", st.Median())
	b.set("max", st.Max())
	if opts.Elapsed > 0 {
		b.set("elapsed", opts.Elapsed.Round(time.Millisecond).String())
	}
	if opts.WithSamples {
		b.set("samples", st.Samples())
	}
	return b.done()
}

// ReplayDocument 回放结果的文档
func ReplayDocument(res *percolation.ReplayResult, withSteps bool) (string, error) {
	b := &docBuilder{raw: "{}"}
	b.set("n", res.N)
	b.set("steps", len(res.Steps))
	b.set("open_sites", res.OpenSites)
	b.set("full_sites", res.FullSites)
	b.set("percolates", res.Percolates)
	b.set("percolated_at", res.PercolatedAt)
	if withSteps {
		b.set("trace", res.Steps)
	}
	return b.done()
}
