package report

import (
	"fmt"
	"io"
	"strings"

	"percolation/pkg/errorutil"
	"percolation/pkg/sh"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

type JSONFormat string

const (
	JSONFormatOne JSONFormat = "one"
	JSONFormatMul JSONFormat = "mul"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatMul), string(JSONFormatOne):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat" // 这个字符串用于帮助文档与类型提示
}

type OutputFormatter interface {
	Format(w io.Writer, doc gjson.Result, varName string, jsonFormat JSONFormat) error
	// 可选: 用于错误退出前执行的清理
	Cleanup(w io.Writer, varName string)
}

var formatters = map[string]OutputFormatter{
	"txt":  TextFormatter{},
	"json": JSONFormatter{},
	"sh":   BashFormatter{},
}

// Formats 列出支持的输出格式
func Formats() []string {
	return []string{"txt", "json", "sh"}
}

// Write 按 format 输出文档，格式不支持时返回参数错误
func Write(w io.Writer, format, doc, varName string, jsonFormat JSONFormat) error {
	formatter, ok := formatters[format]
	if !ok {
		return errorutil.InvalidArgument("不支持的输出格式: %s (%s)", format, strings.Join(Formats(), "/"))
	}
	if !gjson.Valid(doc) {
		formatter.Cleanup(w, varName)
		return errorutil.NewExitError(errorutil.CodeInternalErr, fmt.Errorf("结果文档不是有效的 JSON"))
	}
	if err := formatter.Format(w, gjson.Parse(doc), varName, jsonFormat); err != nil {
		formatter.Cleanup(w, varName)
		if errorutil.HasExitCode(err) {
			return err
		}
		return errorutil.NewExitError(errorutil.CodeIOError, err)
	}
	return nil
}

// 文本输出时的显示名称，没有列出来的直接用键名
var textLabels = map[string]string{
	"n":             "grid size",
	"sites":         "sites",
	"stddev":        "stddev",
	"open_sites":    "open sites",
	"full_sites":    "full sites",
	"percolated_at": "percolated at step",
}

const intervalLabel = "95% confidence interval"

type TextFormatter struct{}

type textLine struct {
	label string
	value string
}

func (f TextFormatter) Format(w io.Writer, doc gjson.Result, _ string, _ JSONFormat) error {
	var lines []textLine
	doc.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		switch key {
		case "confidence_low":
			lines = append(lines, textLine{intervalLabel, fmt.Sprintf("[%s, %s]",
				textValue(v), textValue(doc.Get("confidence_high")))})
		case "confidence_high":
			// 已经和下界合并成一行
		case "samples", "trace":
			lines = append(lines, textLine{key, fmt.Sprintf("%d items", len(v.Array()))})
		default:
			label, ok := textLabels[key]
			if !ok {
				label = key
			}
			lines = append(lines, textLine{label, textValue(v)})
		}
		return true
	})

	// 修正宽度判断(模糊字符按照宽度1计算)
	runewidth.DefaultCondition.EastAsianWidth = false
	width := 0
	for _, l := range lines {
		if lw := runewidth.StringWidth(l.label); lw > width {
			width = lw
		}
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s = %s\n", runewidth.FillRight(l.label, width), l.value); err != nil {
			return err
		}
	}
	return nil
}

func (f TextFormatter) Cleanup(io.Writer, string) {
	// 空实现，不做任何事
}

// 整数加千分位，浮点保持原始写法
func textValue(v gjson.Result) string {
	if v.Type != gjson.Number {
		return v.String()
	}
	if strings.ContainsAny(v.Raw, ".eE") {
		return v.Raw
	}
	return humanize.Comma(v.Int())
}

type JSONFormatter struct{}

func (f JSONFormatter) Format(w io.Writer, doc gjson.Result, _ string, jsonFormat JSONFormat) error {
	var out []byte
	switch jsonFormat {
	case JSONFormatOne:
		out = append(pretty.Ugly([]byte(doc.Raw)), '\n')
	case JSONFormatMul, "":
		out = pretty.PrettyOptions([]byte(doc.Raw), &pretty.Options{
			Width:    80,
			Prefix:   "",
			Indent:   "    ",
			SortKeys: false,
		})
	default:
		return errorutil.InvalidArgument("不支持的 jsonformat: %s", jsonFormat)
	}
	_, err := w.Write(out)
	return err
}

func (f JSONFormatter) Cleanup(io.Writer, string) {
	// 空实现，不做任何事
}

type BashFormatter struct{}

// 输出可以直接 eval 的 declare 语句
func (f BashFormatter) Format(w io.Writer, doc gjson.Result, varName string, _ JSONFormat) error {
	if varName == "" {
		varName = "RESULT"
	}

	var stmt string
	switch {
	case doc.IsObject():
		var keys []string
		values := make(map[string]string)
		doc.ForEach(func(k, v gjson.Result) bool {
			keys = append(keys, k.String())
			values[k.String()] = v.String()
			return true
		})
		stmt = sh.DeclareAssoc(varName, keys, values)
	case doc.IsArray():
		var parts []string
		doc.ForEach(func(_, v gjson.Result) bool {
			parts = append(parts, v.String())
			return true
		})
		stmt = sh.DeclareArray(varName, parts)
	default:
		stmt = sh.DeclareScalar(varName, doc.String())
	}

	_, err := fmt.Fprintln(w, stmt)
	return err
}

func (f BashFormatter) Cleanup(w io.Writer, varName string) {
	if varName == "" {
		varName = "RESULT"
	}
	fmt.Fprintln(w, sh.Unset(varName))
}
