package systems

import (
	"log"
	"strings"

	"golang.design/x/clipboard"
)

// ClipboardReader 读取剪贴板文本
type ClipboardReader interface {
	ReadText() (string, bool)
}

// SystemClipboard 系统剪贴板
// 初始化失败（例如无 X11 显示）时 ReadText 始终返回 false
type SystemClipboard struct {
	available bool
}

// NewSystemClipboard 初始化系统剪贴板
func NewSystemClipboard() *SystemClipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("[Clipboard] Warning: clipboard unavailable, paste disabled: %v", err)
		return &SystemClipboard{}
	}
	return &SystemClipboard{available: true}
}

// ReadText 读取剪贴板中的文本
func (c *SystemClipboard) ReadText() (string, bool) {
	if c == nil || !c.available {
		return "", false
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// singleLine 将粘贴内容转换为单行文本（换行与制表符替换为空格）
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
