package initutil

import (
	"os"
	"path/filepath"
	"testing"

	"percolation/pkg/errorutil"

	"github.com/google/go-cmp/cmp"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "percolation.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConf(t, `{
    "grid":   {"n": 64, "trials": 30},
    "random": {"seed": 42, "sampler": "shuffle"},
    "output": {"format": "sh", "varname": "PERC"},
    "log":    {"level": "DEBUG"}
}`)

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig 失败: %v", err)
	}

	want := DefaultConfig()
	want.Source = path
	want.Grid = GridConfig{N: 64, Trials: 30}
	want.Random = RandomConfig{Seed: 42, Sampler: "shuffle"}
	want.Output.Format = "sh"
	want.Output.VarName = "PERC"
	want.Log.Level = "DEBUG"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	got, err := LoadConfig("")
	if err != nil {
		t.Fatalf("空路径不应该报错: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), got); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"invalid json", writeConf(t, `{"grid": {"n": 3,}`)},
		{"string size", writeConf(t, `{"grid": {"n": "ten"}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatalf("期望报错")
			}
			if code := errorutil.ExitCodeFromError(err); code != errorutil.CodeConfigError {
				t.Errorf("exit code = %d, want %d", code, errorutil.CodeConfigError)
			}
		})
	}
}

func TestExtractIntConfig(t *testing.T) {
	conf := `{"grid": {"n": 300, "trials": "15", "big": 12.9}, "#grid": {"n": 1}}`

	tests := []struct {
		name       string
		key        string
		defaultVal int
		want       int
	}{
		{"present", "grid.n", 480, 300},
		{"string value fallback", "grid.trials", 60, 60},
		{"missing key fallback", "grid.nonexistent", 42, 42},
		{"float truncated", "grid.big", 1000, 12},
		{"missing section", "random.seed", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractIntConfig(conf, tt.key, tt.defaultVal)
			if got != tt.want {
				t.Errorf("key=%q expect=%d got=%d", tt.key, tt.want, got)
			}
		})
	}
}

func TestExtractStringConfig(t *testing.T) {
	conf := `{"output": {"format": "json", "varname": "", "jsonformat": 1}}`

	if got := extractStringConfig(conf, "output.format", "txt"); got != "json" {
		t.Errorf("format = %q", got)
	}
	if got := extractStringConfig(conf, "output.varname", "RESULT"); got != "RESULT" {
		t.Errorf("空字符串应该回退默认值, got %q", got)
	}
	if got := extractStringConfig(conf, "output.jsonformat", "mul"); got != "mul" {
		t.Errorf("类型不对应该回退默认值, got %q", got)
	}
}

// Init 只生效一次，GetConfig 返回的是拷贝
func TestInitAndGetConfig(t *testing.T) {
	path := writeConf(t, `{"grid": {"n": 9}}`)
	if err := Init(path); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	if err := Init(filepath.Join(t.TempDir(), "ignored.json")); err != nil {
		t.Fatalf("第二次 Init 应该直接返回第一次的结果: %v", err)
	}

	conf := GetConfig()
	if conf.Grid.N != 9 {
		t.Errorf("Grid.N = %d, want 9", conf.Grid.N)
	}

	conf.Grid.N = 1000
	if GetConfig().Grid.N != 9 {
		t.Errorf("修改拷贝影响了全局配置")
	}
}
