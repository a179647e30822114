package initutil

import (
	"fmt"
	"os"
	"sync"

	"percolation/pkg/errorutil"

	"github.com/mohae/deepcopy"
	"github.com/tidwall/gjson"
)

type GridConfig struct {
	N      int // 网格边长
	Trials int // 试验次数
}

type RandomConfig struct {
	// 0 表示按时间取种子
	Seed    uint64
	Sampler string // rejection / shuffle
}

type OutputConfig struct {
	Format     string // txt / json / sh
	VarName    string // sh 输出的变量名
	JSONFormat string // mul / one
}

type LogConfig struct {
	Level string
	File  string
}

type Config struct {
	// 配置文件路径，空表示只用默认值
	Source string
	Grid   GridConfig
	Random RandomConfig
	Output OutputConfig
	Log    LogConfig
}

func DefaultConfig() Config {
	return Config{
		Grid:   GridConfig{N: 200, Trials: 100},
		Random: RandomConfig{Sampler: "rejection"},
		Output: OutputConfig{Format: "txt", VarName: "RESULT", JSONFormat: "mul"},
		Log:    LogConfig{Level: "WARN", File: "stderr"},
	}
}

var (
	globalConfig = DefaultConfig()
	once         sync.Once
	initErr      error
)

// LoadConfig 读取 JSON 配置文件，文件里没有的键保持默认值
//
//	{
//	    "grid":   {"n": 200, "trials": 100},
//	    "random": {"seed": 42, "sampler": "shuffle"},
//	    "output": {"format": "json", "varname": "RESULT", "jsonformat": "one"},
//	    "log":    {"level": "INFO", "file": "percolation.log"}
//	}
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return conf, errorutil.NewExitErrorWithMessage(
			errorutil.CodeConfigError, "无法读取配置文件 "+path, err)
	}
	if err := parseConfig(string(raw), &conf); err != nil {
		return conf, errorutil.NewExitErrorWithMessage(
			errorutil.CodeConfigError, "配置文件内容有误 "+path, err)
	}
	conf.Source = path
	return conf, nil
}

func parseConfig(raw string, conf *Config) error {
	if !gjson.Valid(raw) {
		return fmt.Errorf("不是有效的 JSON")
	}

	conf.Grid.N = extractIntConfig(raw, "grid.n", conf.Grid.N)
	conf.Grid.Trials = extractIntConfig(raw, "grid.trials", conf.Grid.Trials)
	conf.Random.Seed = extractUintConfig(raw, "random.seed", conf.Random.Seed)
	conf.Random.Sampler = extractStringConfig(raw, "random.sampler", conf.Random.Sampler)
	conf.Output.Format = extractStringConfig(raw, "output.format", conf.Output.Format)
	conf.Output.VarName = extractStringConfig(raw, "output.varname", conf.Output.VarName)
	conf.Output.JSONFormat = extractStringConfig(raw, "output.jsonformat", conf.Output.JSONFormat)
	conf.Log.Level = extractStringConfig(raw, "log.level", conf.Log.Level)
	conf.Log.File = extractStringConfig(raw, "log.file", conf.Log.File)

	// 数值不合法的情况交给具体模块报错，这里只检查类型
	for _, key := range []string{"grid.n", "grid.trials", "random.seed"} {
		if v := gjson.Get(raw, key); v.Exists() && v.Type != gjson.Number {
			return fmt.Errorf("%s 必须是数字，实际是 %s", key, v.Type)
		}
	}
	return nil
}

// 键不存在或者类型不对时返回默认值
func extractIntConfig(raw, path string, defaultVal int) int {
	v := gjson.Get(raw, path)
	if v.Type != gjson.Number {
		return defaultVal
	}
	return int(v.Int())
}

func extractUintConfig(raw, path string, defaultVal uint64) uint64 {
	v := gjson.Get(raw, path)
	if v.Type != gjson.Number {
		return defaultVal
	}
	return v.Uint()
}

func extractStringConfig(raw, path string, defaultVal string) string {
	v := gjson.Get(raw, path)
	if v.Type != gjson.String || v.Str == "" {
		return defaultVal
	}
	return v.Str
}

// Init 只执行一次，后续调用返回第一次的结果
// 这里不能打日志，日志级别要等配置加载完才能确定
func Init(path string) error {
	once.Do(func() {
		conf, err := LoadConfig(path)
		if err != nil {
			initErr = err
			return
		}
		globalConfig = conf
	})
	return initErr
}

// GetConfig 获取全局配置的拷贝，调用方修改不影响全局
func GetConfig() Config {
	return deepcopy.Copy(globalConfig).(Config)
}
