// Package percolation 在 n×n 网格上模拟格点渗流。
//
// 格点坐标对外从 1 开始 (row, col ∈ [1, n])，内部用一维下标
// n*(row-1)+(col-1) 存储，和并查集的元素一一对应。并查集额外多出两个
// 虚拟节点：n*n 代表整个顶行，n*n+1 代表整个底行，这样判断是否渗透
// 只需要一次连通查询。
package percolation

import (
	"percolation/pkg/errorutil"
	"percolation/pkg/unionfind"
)

// Percolation 独占自己的网格和并查集，不在多个实例间共享
type Percolation struct {
	n         int
	open      []bool
	openCount int
	uf        *unionfind.UnionFind
	top       int // 虚拟顶节点
	bottom    int // 虚拟底节点
}

// New 创建 n×n 网格，所有格点初始都是关闭的
func New(n int) (*Percolation, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgument("网格尺寸必须为正数: %d", n)
	}

	uf, err := unionfind.NewUnionFind(n*n + 2)
	if err != nil {
		return nil, err
	}

	return &Percolation{
		n:      n,
		open:   make([]bool, n*n),
		uf:     uf,
		top:    n * n,
		bottom: n*n + 1,
	}, nil
}

// index 校验坐标并换算成一维下标，所有对外操作都经过这里
func (p *Percolation) index(row, col int) (int, error) {
	if row <= 0 || row > p.n || col <= 0 || col > p.n {
		return 0, errorutil.InvalidArgument("坐标 (%d, %d) 不在 [1, %d] 范围内", row, col, p.n)
	}
	return p.n*(row-1) + (col - 1), nil
}

// link 合并两个内部下标，下标由本包计算，出错说明实现有 bug
func (p *Percolation) link(a, b int) {
	if _, err := p.uf.Union(a, b); err != nil {
		panic(err)
	}
}

func (p *Percolation) linked(a, b int) bool {
	ok, err := p.uf.Connected(a, b)
	if err != nil {
		panic(err)
	}
	return ok
}

// Open 打开格点 (row, col)，已经打开的格点重复打开不做任何事
func (p *Percolation) Open(row, col int) error {
	site, err := p.index(row, col)
	if err != nil {
		return err
	}
	if p.open[site] {
		return nil
	}

	p.open[site] = true
	p.openCount++

	if row == 1 {
		p.link(site, p.top)
	}
	if row == p.n {
		p.link(site, p.bottom)
	}

	// 左右上下四个方向，不回绕
	if col > 1 && p.open[site-1] {
		p.link(site, site-1)
	}
	if col < p.n && p.open[site+1] {
		p.link(site, site+1)
	}
	if row > 1 && p.open[site-p.n] {
		p.link(site, site-p.n)
	}
	if row < p.n && p.open[site+p.n] {
		p.link(site, site+p.n)
	}
	return nil
}

// IsOpen 判断格点是否打开
func (p *Percolation) IsOpen(row, col int) (bool, error) {
	site, err := p.index(row, col)
	if err != nil {
		return false, err
	}
	return p.open[site], nil
}

// IsFull 判断格点是否和顶行连通(满格点一定是打开的)
func (p *Percolation) IsFull(row, col int) (bool, error) {
	site, err := p.index(row, col)
	if err != nil {
		return false, err
	}
	return p.open[site] && p.linked(site, p.top), nil
}

// NumberOfOpenSites 返回已打开的格点数
func (p *Percolation) NumberOfOpenSites() int {
	return p.openCount
}

// Percolates 判断顶行和底行是否已经连通，一旦为 true 之后不会再变回 false
func (p *Percolation) Percolates() bool {
	return p.linked(p.top, p.bottom)
}

// N 返回网格边长
func (p *Percolation) N() int {
	return p.n
}
