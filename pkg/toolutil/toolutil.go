package toolutil

import (
	"path/filepath"
	"strings"
)

// 源码路径里从这些目录开始截取，日志里只显示项目内的相对路径
var projectDirs = []string{"pkg/", "cmd/", "internal/"}

func TrimToProjectPath(file string) string {
	// 统一分隔符，确保在不同操作系统下都表现一致
	path := filepath.ToSlash(file)

	best := -1
	for _, dir := range projectDirs {
		if idx := strings.LastIndex(path, "/"+dir); idx > best {
			best = idx
		}
	}
	if best >= 0 {
		return path[best+1:]
	}
	return path
}
