package unionfind

import (
	"errors"
	"testing"

	"percolation/pkg/errorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConnected(t *testing.T, uf *UnionFind, x, y int) bool {
	t.Helper()
	ok, err := uf.Connected(x, y)
	require.NoError(t, err)
	return ok
}

func TestUnionFind(t *testing.T) {
	uf, err := NewUnionFind(10)
	require.NoError(t, err)

	// 初始状态：每个元素独立
	if mustConnected(t, uf, 1, 2) {
		t.Errorf("Expected 1 and 2 not connected")
	}
	assert.Equal(t, 10, uf.Count())

	// 合并 1 和 2
	merged, err := uf.Union(1, 2)
	require.NoError(t, err)
	assert.True(t, merged)
	if !mustConnected(t, uf, 1, 2) {
		t.Errorf("Expected 1 and 2 connected")
	}

	// 合并 2 和 3，连通性可传递
	_, err = uf.Union(2, 3)
	require.NoError(t, err)
	if !mustConnected(t, uf, 1, 3) {
		t.Errorf("Expected 1 and 3 connected")
	}

	// 检查集合大小
	size, err := uf.Size(1)
	require.NoError(t, err)
	if size != 3 {
		t.Errorf("Expected size of set containing 1 to be 3, got %d", size)
	}

	// 合并不同集合
	_, err = uf.Union(4, 5)
	require.NoError(t, err)
	if !mustConnected(t, uf, 4, 5) {
		t.Errorf("Expected 4 and 5 connected")
	}

	// 检查未合并的元素
	if mustConnected(t, uf, 1, 4) {
		t.Errorf("Expected 1 and 4 not connected")
	}
	assert.Equal(t, 7, uf.Count())
}

// 重复合并是空操作，集合个数不变
func TestUnionSameSet(t *testing.T) {
	uf, err := NewUnionFind(4)
	require.NoError(t, err)

	_, err = uf.Union(0, 1)
	require.NoError(t, err)
	_, err = uf.Union(1, 2)
	require.NoError(t, err)

	merged, err := uf.Union(2, 0)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, 2, uf.Count())

	r0, err := uf.Find(0)
	require.NoError(t, err)
	r2, err := uf.Find(2)
	require.NoError(t, err)
	assert.Equal(t, r0, r2)
}

func TestUnionBySize(t *testing.T) {
	uf, err := NewUnionFind(6)
	require.NoError(t, err)

	for _, p := range [][2]int{{0, 1}, {0, 2}, {0, 3}} {
		_, err := uf.Union(p[0], p[1])
		require.NoError(t, err)
	}
	big, err := uf.Find(0)
	require.NoError(t, err)

	// 小集合作为第一个参数也要挂到大集合下面
	_, err = uf.Union(4, 0)
	require.NoError(t, err)
	root, err := uf.Find(4)
	require.NoError(t, err)
	assert.Equal(t, big, root)

	size, err := uf.Size(4)
	require.NoError(t, err)
	assert.Equal(t, 5, size)
}

func TestLongChain(t *testing.T) {
	const n = 100000
	uf, err := NewUnionFind(n)
	require.NoError(t, err)

	for i := 1; i < n; i++ {
		_, err := uf.Union(i-1, i)
		require.NoError(t, err)
	}
	assert.True(t, mustConnected(t, uf, 0, n-1))
	assert.Equal(t, 1, uf.Count())
}

func TestOutOfRange(t *testing.T) {
	uf, err := NewUnionFind(3)
	require.NoError(t, err)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative first", -1, 0},
		{"negative second", 0, -1},
		{"first equals len", 3, 0},
		{"second past len", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uf.Union(tt.x, tt.y)
			assert.True(t, errors.Is(err, errorutil.ErrOutOfRange), "Union: %v", err)

			_, err = uf.Connected(tt.x, tt.y)
			assert.True(t, errors.Is(err, errorutil.ErrOutOfRange), "Connected: %v", err)
		})
	}

	// 校验失败不能改变任何状态
	assert.Equal(t, 3, uf.Count())

	_, err = uf.Find(3)
	assert.ErrorIs(t, err, errorutil.ErrOutOfRange)
	_, err = uf.Size(-1)
	assert.ErrorIs(t, err, errorutil.ErrOutOfRange)
}

func TestNewUnionFind(t *testing.T) {
	uf, err := NewUnionFind(0)
	require.NoError(t, err)
	assert.Equal(t, 0, uf.Len())
	assert.Equal(t, 0, uf.Count())

	_, err = uf.Connected(0, 0)
	assert.ErrorIs(t, err, errorutil.ErrOutOfRange)

	_, err = NewUnionFind(-1)
	assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}
