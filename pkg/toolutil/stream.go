package toolutil

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/mohae/deepcopy"
)

// Stream 是一个数据流容器，支持链式数据处理
type Stream[T any] struct {
	data []T
}

// StreamOf 将切片包装为 Stream 对象
func StreamOf[T any](data []T) Stream[T] {
	return Stream[T]{data}
}

func (s Stream[T]) ToSlice() []T {
	return s.data
}

func (s Stream[T]) Count() int {
	return len(s.data)
}

// Map 映射元素为另一个类型
func Map[T any, R any](s Stream[T], f func(T) R) Stream[R] {
	out := make([]R, len(s.data))
	for i, v := range s.data {
		out[i] = f(v)
	}
	return Stream[R]{out}
}

// Sorted 的深度拷贝版本，排序不影响原始数据
func SortedSafe[T any](s Stream[T], less func(T, T) bool) Stream[T] {
	cloned := deepcopy.Copy(s.data).([]T)
	sort.Slice(cloned, func(i, j int) bool {
		return less(cloned[i], cloned[j])
	})
	return Stream[T]{cloned}
}

func Max[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	max := s.data[0]
	for _, v := range s.data[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

func Min[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	min := s.data[0]
	for _, v := range s.data[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// 泛型约束要求支持 + 号运算
func Sum[T constraints.Integer | constraints.Float](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	var sum T
	for _, v := range s.data {
		sum += v
	}
	return sum, true
}

// 平均值只对浮点有意义
type Float interface {
	constraints.Float
}

func Average[T Float](s Stream[T]) (T, bool) {
	sum, ok := Sum(s)
	if !ok {
		return sum, false
	}
	return sum / T(len(s.data)), true
}

// Variance 样本方差(无偏估计，除以 n-1)，少于两个元素时没有定义
func Variance[T Float](s Stream[T]) (T, bool) {
	if len(s.data) < 2 {
		var zero T
		return zero, false
	}
	mean, _ := Average(s)
	var acc T
	for _, v := range s.data {
		acc += (v - mean) * (v - mean)
	}
	return acc / T(len(s.data)-1), true
}

func StdDev[T Float](s Stream[T]) (T, bool) {
	v, ok := Variance(s)
	if !ok {
		return v, false
	}
	return T(math.Sqrt(float64(v))), true
}

// Median 偶数个元素时取中间两个的平均值
func Median[T Float](s Stream[T]) (T, bool) {
	n := len(s.data)
	if n == 0 {
		var zero T
		return zero, false
	}
	sorted := SortedSafe(s, func(a, b T) bool { return a < b }).data
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}
