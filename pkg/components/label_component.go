package components

import (
	"image"
	"image/color"
)

// LabelSizing 文字字号计算方式
type LabelSizing int

const (
	// LabelFixed 固定字号
	LabelFixed LabelSizing = iota
	// LabelFitRect 按矩形大小与字数自动计算字号
	LabelFitRect
)

// LabelComponent 单行文字标签组件
// 用于结束页的名字和问答页的错误提示
type LabelComponent struct {
	Text   string
	Rect   image.Rectangle // 文字在矩形内居中
	LayerZ int

	Sizing   LabelSizing
	FontSize float64 // LabelFixed 时使用

	TextColor  color.Color
	Background color.Color // nil 表示无背景（有背景时在文字周围绘制底框）
	Border     color.Color // nil 表示无边框

	// 自身的淡入淡出（与图层不透明度相乘）
	Visible      bool
	Alpha        float64
	FadeDuration float64 // 秒，0 表示立即切换
}
