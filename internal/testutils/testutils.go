package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// 回放命令 json 输出对应的结构，trace 不参与比较
type ReplayJSON struct {
	N            int  `json:"n"`
	Steps        int  `json:"steps"`
	OpenSites    int  `json:"open_sites"`
	FullSites    int  `json:"full_sites"`
	Percolates   bool `json:"percolates"`
	PercolatedAt int  `json:"percolated_at"`
}

// GoldenCase 一个输入文件和它的期望结果文件
// testdata/replay/input3.txt -> testdata/replay/input3.json
type GoldenCase struct {
	Name     string
	Input    string
	Expected string
}

// FindGoModRoot 从 dir 开始往上找 go.mod 所在的目录
func FindGoModRoot(dir string) (string, error) {
	dir = filepath.Clean(dir)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("从 %s 往上找不到 go.mod", dir)
		}
		dir = parent
	}
}

// TestdataDir 返回项目根目录下的 testdata/<sub>
func TestdataDir(t *testing.T, sub string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取当前工作目录失败: %v", err)
	}
	root, err := FindGoModRoot(wd)
	if err != nil {
		t.Fatalf("找不到 go.mod 根目录: %v", err)
	}
	return filepath.Join(root, "testdata", sub)
}

// GoldenCases 列出目录下所有带期望结果的 *.txt 输入
func GoldenCases(t *testing.T, dir string) []GoldenCase {
	t.Helper()
	inputs, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		t.Fatalf("列出 %s 失败: %v", dir, err)
	}
	sort.Strings(inputs)

	var cases []GoldenCase
	for _, in := range inputs {
		expected := strings.TrimSuffix(in, ".txt") + ".json"
		if _, err := os.Stat(expected); err != nil {
			// 没有期望结果的输入只给手工跑
			continue
		}
		cases = append(cases, GoldenCase{
			Name:     strings.TrimSuffix(filepath.Base(in), ".txt"),
			Input:    in,
			Expected: expected,
		})
	}
	if len(cases) == 0 {
		t.Fatalf("%s 下没有用例", dir)
	}
	return cases
}

// 读取 JSON 文件的泛型函数
func ReadJSONFile[T any](filePath string) (*T, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseJSON[T](file)
}

func ParseJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// 比较 JSON 数据的泛型函数
func CompareJSON[T any](actual, expected *T) bool {
	return reflect.DeepEqual(actual, expected)
}
