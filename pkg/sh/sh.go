package sh

import (
	"fmt"
	"strings"
)

// BashANSIQuote 将任意字符串转为 $'...' 形式的 ANSI-C 样式安全字符串
// $'\a\b\t\n\v\f\r\E\\\'\000\001ABC中文'
func BashANSIQuote(s string) string {
	var b strings.Builder
	b.WriteString("$'")

	for _, r := range s {
		switch r {
		case 27: // Escape (ASCII 27)
			b.WriteString(`\E`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			if r < 32 || r == 127 {
				// 对不可打印字符使用 \ooo 八进制转义
				b.WriteString(fmt.Sprintf(`\%03o`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteString("'")
	return b.String()
}

// Unset 生成清除变量的语句，输出失败时让 eval 的调用方看到变量不存在
func Unset(name string) string {
	return fmt.Sprintf("unset -v %s", name)
}

// DeclareScalar 使用 declare 确保是局部变量
func DeclareScalar(name, value string) string {
	return fmt.Sprintf("%s ; declare %s=%s", Unset(name), name, BashANSIQuote(value))
}

func DeclareArray(name string, values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = BashANSIQuote(v)
	}
	return fmt.Sprintf("%s ; declare -a %s=(%s)", Unset(name), name, strings.Join(parts, " "))
}

// DeclareAssoc 按 keys 的顺序输出关联数组
func DeclareAssoc(name string, keys []string, values map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ; declare -A %s=(\n", Unset(name), name)
	for _, k := range keys {
		fmt.Fprintf(&b, "    [%s]=%s\n", BashANSIQuote(k), BashANSIQuote(values[k]))
	}
	b.WriteString(")")
	return b.String()
}
