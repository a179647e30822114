//  1. 基本流构建 & Map
//     s := StreamOf([]int{1, 2, 3, 4})
//     squared := Map(s, func(x int) int { return x * x }).ToSlice()
//     // [1 4 9 16]
//
//  2. 计数转比例后求统计量
//     counts := StreamOf([]int{236, 241, 229})
//     ratios := Map(counts, func(c int) float64 { return float64(c) / 400 })
//     mean, _ := Average(ratios) // 0.588333...
//     sd, ok := StdDev(ratios)   // 样本数少于 2 时 ok 为 false
//
//  3. 排序不修改原切片
//     nums := []float64{0.6, 0.5, 0.7}
//     sorted := SortedSafe(StreamOf(nums), func(a, b float64) bool { return a < b })
//     fmt.Println(sorted.ToSlice(), nums) // [0.5 0.6 0.7] [0.6 0.5 0.7]
//
//  4. Min / Max / Median
//     lo, _ := Min(StreamOf(nums))    // 0.5
//     hi, _ := Max(StreamOf(nums))    // 0.7
//     mid, _ := Median(StreamOf(nums)) // 0.6
package toolutil
