package utils

import (
	"bytes"
	"fmt"
)

// packageFromCmdline 从 /proc/self/cmdline 的内容中取出 Android 包名
// 内容以 NUL 结尾，可能带换行
func packageFromCmdline(data []byte) (string, error) {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return pkg, nil
}
