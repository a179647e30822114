package percolation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"percolation/pkg/errorutil"
	"percolation/pkg/logutil"
)

// Site 是一个 1 起始的格点坐标
type Site struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step 记录回放中的一次打开操作以及之后的渗透状态
type Step struct {
	Site
	Percolates bool `json:"percolates"`
}

type ReplayResult struct {
	N          int    `json:"n"`
	Steps      []Step `json:"steps"`
	OpenSites  int    `json:"open_sites"`
	FullSites  int    `json:"full_sites"`
	Percolates bool   `json:"percolates"`
	// 第一次渗透发生在第几步(从 1 开始)，0 表示始终没有渗透
	PercolatedAt int `json:"percolated_at"`
}

// ParseOpenSequence 解析打开序列：第一个整数是网格尺寸 n，
// 之后每两个整数是一个 (row, col)，分隔符可以是任意空白
func ParseOpenSequence(r io.Reader) (int, []Site, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var nums []int
	for pos := 1; scanner.Scan(); pos++ {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, nil, errorutil.InvalidArgument("第 %d 个字段 %q 不是整数", pos, scanner.Text())
		}
		nums = append(nums, v)
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, errorutil.NewExitError(errorutil.CodeIOError, fmt.Errorf("读取打开序列失败: %w", err))
	}

	if len(nums) == 0 {
		return 0, nil, errorutil.InvalidArgument("打开序列为空，缺少网格尺寸")
	}
	if len(nums[1:])%2 != 0 {
		return 0, nil, errorutil.InvalidArgument("第 %d 个字段之后缺少列号", len(nums))
	}

	sites := make([]Site, 0, len(nums[1:])/2)
	for i := 1; i+1 < len(nums); i += 2 {
		sites = append(sites, Site{Row: nums[i], Col: nums[i+1]})
	}
	return nums[0], sites, nil
}

// Replay 在新的 n×n 网格上依次打开 sites，记录每一步之后是否渗透
func Replay(n int, sites []Site) (*ReplayResult, error) {
	p, err := New(n)
	if err != nil {
		return nil, err
	}

	res := &ReplayResult{N: n, Steps: make([]Step, 0, len(sites))}
	for i, s := range sites {
		if err := p.Open(s.Row, s.Col); err != nil {
			return nil, fmt.Errorf("第 %d 步打开 (%d, %d) 失败: %w", i+1, s.Row, s.Col, err)
		}
		perc := p.Percolates()
		if perc && res.PercolatedAt == 0 {
			res.PercolatedAt = i + 1
			logutil.Debug("第 %d 步 (%d, %d) 之后开始渗透", i+1, s.Row, s.Col)
		}
		res.Steps = append(res.Steps, Step{Site: s, Percolates: perc})
	}

	res.OpenSites = p.NumberOfOpenSites()
	res.Percolates = p.Percolates()
	res.FullSites = p.countFull()
	return res, nil
}

func (p *Percolation) countFull() int {
	full := 0
	for site, open := range p.open {
		if open && p.linked(site, p.top) {
			full++
		}
	}
	return full
}
