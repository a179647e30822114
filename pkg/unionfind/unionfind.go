package unionfind

import (
	"percolation/pkg/errorutil"
)

// UnionFind 是并查集结构，支持路径压缩和按大小合并
type UnionFind struct {
	parent []int
	size   []int // 每个集合的大小，只在根节点上有效
	count  int   // 当前不相交集合的个数
}

// NewUnionFind 初始化并查集，元素范围为 [0, n)，每个元素自成一个集合
func NewUnionFind(n int) (*UnionFind, error) {
	if n < 0 {
		return nil, errorutil.InvalidArgument("并查集元素个数不能为负数: %d", n)
	}
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size, count: n}, nil
}

func (uf *UnionFind) validate(x int) error {
	if x < 0 || x >= len(uf.parent) {
		return errorutil.OutOfRange("元素 %d 不在 [0, %d) 范围内", x, len(uf.parent))
	}
	return nil
}

// find 不做边界检查，调用前必须先 validate
func (uf *UnionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x])
	}
	return uf.parent[x]
}

// Find 查找元素所在集合的根节点（带路径压缩）
func (uf *UnionFind) Find(x int) (int, error) {
	if err := uf.validate(x); err != nil {
		return 0, err
	}
	return uf.find(x), nil
}

// Union 合并两个集合，小集合挂到大集合下面
// 返回 false 表示两者原本就在同一个集合
func (uf *UnionFind) Union(x, y int) (bool, error) {
	if err := uf.validate(x); err != nil {
		return false, err
	}
	if err := uf.validate(y); err != nil {
		return false, err
	}

	rootX := uf.find(x)
	rootY := uf.find(y)
	if rootX == rootY {
		return false, nil
	}

	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	uf.count--
	return true, nil
}

// Connected 判断两个元素是否在同一个集合
func (uf *UnionFind) Connected(x, y int) (bool, error) {
	if err := uf.validate(x); err != nil {
		return false, err
	}
	if err := uf.validate(y); err != nil {
		return false, err
	}
	return uf.find(x) == uf.find(y), nil
}

// Size 返回某个集合的大小
func (uf *UnionFind) Size(x int) (int, error) {
	if err := uf.validate(x); err != nil {
		return 0, err
	}
	return uf.size[uf.find(x)], nil
}

// Count 返回不相交集合的个数
func (uf *UnionFind) Count() int {
	return uf.count
}

// Len 返回元素总数
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}
