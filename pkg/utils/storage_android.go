//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 检查设置存储目录是否可写
//
// gdata 在 Android 上把数据写到 /data/data/{包名}/ 下，目录不存在时
// gdata.Open 直接失败。这里提前检查，让启动日志给出具体原因；
// 返回错误时设置只保存在内存中。
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("cannot detect Android package name")
	}

	probe := filepath.Join(dir, ".ticketquiz_probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回 gdata 在 Android 上使用的数据目录
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg, err := packageFromCmdline(data)
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
