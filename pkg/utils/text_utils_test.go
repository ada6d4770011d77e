package utils

import (
	"bytes"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// TestFitFontSize 测试结束页名字字号
func TestFitFontSize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		w, h  float64
		want  float64
	}{
		// min(0.6*80, 0.9*450/2)
		{"短名字受高度限制", "Al", 450, 80, 48},
		// min(48, 405/10)
		{"长名字受宽度限制", "0123456789", 450, 80, 40.5},
		{"空名字按一个字计算", "", 100, 500, 90},
		// min(120, 270/3)
		{"中文按字数计算", "王小明", 300, 200, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitFontSize(tt.input, tt.w, tt.h, 0.6, 0.9)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FitFontSize(%q) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestMeasureTextWidth 测试文本宽度测量
func TestMeasureTextWidth(t *testing.T) {
	face := testFace(t, 20)

	if MeasureTextWidth("", face) != 0 {
		t.Error("空文本宽度应为 0")
	}
	if MeasureTextWidth("abc", nil) != 0 {
		t.Error("无字体时宽度应为 0")
	}
	short := MeasureTextWidth("ab", face)
	long := MeasureTextWidth("abcdef", face)
	if short <= 0 || long <= short {
		t.Errorf("宽度不合理: short=%v long=%v", short, long)
	}
}

// TestTruncateToWidth 测试超宽文本截断
func TestTruncateToWidth(t *testing.T) {
	face := testFace(t, 20)
	full := "abcdefghijklmnopqrstuvwxyz"

	if got := TruncateToWidth("abc", face, 1000); got != "abc" {
		t.Errorf("未超宽文本不应截断: %q", got)
	}

	limit := MeasureTextWidth("abcdefghij", face)
	got := TruncateToWidth(full, face, limit)
	if MeasureTextWidth(got, face) > limit {
		t.Errorf("截断后仍超宽: %q", got)
	}
	if len(got) < 9 || len(got) > 10 {
		t.Errorf("截断结果长度异常: %q", got)
	}

	if TruncateToWidth(full, nil, 100) != "" {
		t.Error("无字体时应返回空字符串")
	}
}
