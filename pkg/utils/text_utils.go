package utils

import (
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// FitFontSize 计算单行文字在矩形内的字号
//
// 字号取 min(高度比例 * 矩形高, 宽度比例 * 矩形宽 / 字数)，
// 字数为 0 时按 1 计算。
func FitFontSize(textStr string, rectW, rectH, heightRatio, widthRatio float64) float64 {
	n := utf8.RuneCountInString(textStr)
	if n < 1 {
		n = 1
	}
	return math.Min(rectH*heightRatio, rectW*widthRatio/float64(n))
}

// TruncateToWidth 截断文本使其宽度不超过 maxWidth（超出部分直接隐藏，不加省略号）
func TruncateToWidth(textStr string, font text.Face, maxWidth float64) string {
	if font == nil || maxWidth <= 0 {
		return ""
	}
	if MeasureTextWidth(textStr, font) <= maxWidth {
		return textStr
	}
	runes := []rune(textStr)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if MeasureTextWidth(string(runes), font) <= maxWidth {
			break
		}
	}
	return string(runes)
}
