package systems

import (
	"image/color"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// 输入框外观
const (
	inputPadding     = 12.0
	inputBorderWidth = 1
	errorBorderWidth = 3
	inputFillAlpha   = 0.9
)

var (
	inputFillColor        = colornames.White
	inputBorderColor      = colornames.Lightgray
	inputErrorBorderColor = colornames.Crimson
	inputTextColor        = colornames.Black
	inputPlaceholderColor = colornames.Darkgray
	inputCursorColor      = colornames.Black
)

// TextInputRenderSystem 文本输入框渲染系统
// 负责绘制输入框背景、边框、文本和光标
//
// 输入框跟随所属图层的不透明度，由 LayerRenderSystem 在绘制图层后调用 DrawInputBox。
type TextInputRenderSystem struct {
	font FontFunc
}

// NewTextInputRenderSystem 创建文本输入框渲染系统
func NewTextInputRenderSystem(font FontFunc) *TextInputRenderSystem {
	return &TextInputRenderSystem{font: font}
}

// DrawInputBox 绘制单个输入框
func (s *TextInputRenderSystem) DrawInputBox(screen *ebiten.Image, input *components.TextInputComponent, alpha float64) {
	if alpha <= 0 {
		return
	}
	r := input.Rect

	// 1. 背景与边框（错误时红色粗边框）
	border, borderWidth := color.Color(inputBorderColor), float32(inputBorderWidth)
	if input.Error {
		border, borderWidth = inputErrorBorderColor, errorBorderWidth
	}
	drawBox(screen, r, fade(inputFillColor, alpha*inputFillAlpha), fade(border, alpha), borderWidth)

	var face text.Face
	if s.font != nil {
		face = s.font(config.InputFontSize)
	}
	if face == nil {
		return
	}

	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2

	// 2. 文本或占位符（居中）
	if input.Text == "" {
		if input.Placeholder != "" {
			drawCenteredText(screen, input.Placeholder, face, cx, cy, inputPlaceholderColor, alpha)
		}
		if input.IsFocused && input.CursorVisible {
			s.drawCursor(screen, cx, cy, float64(r.Dy()), alpha)
		}
		return
	}

	visible, offset := visibleTail(input.Text, face, float64(r.Dx())-inputPadding*2)
	drawCenteredText(screen, visible, face, cx, cy, inputTextColor, alpha)

	// 3. 光标（闪烁的竖线）
	if input.IsFocused && input.CursorVisible {
		runes := []rune(input.Text)
		pos := clampCursor(input.CursorPosition, len(runes)) - offset
		if pos < 0 {
			pos = 0
		}
		visibleRunes := []rune(visible)
		if pos > len(visibleRunes) {
			pos = len(visibleRunes)
		}
		startX := cx - utils.MeasureTextWidth(visible, face)/2
		cursorX := startX + utils.MeasureTextWidth(string(visibleRunes[:pos]), face)
		s.drawCursor(screen, cursorX, cy, float64(r.Dy()), alpha)
	}
}

// drawCursor 绘制 2 像素宽的光标竖线
func (s *TextInputRenderSystem) drawCursor(screen *ebiten.Image, x, cy, boxHeight, alpha float64) {
	h := boxHeight / 2
	vector.DrawFilledRect(screen, float32(x), float32(cy-h/2), 2, float32(h), fade(inputCursorColor, alpha), false)
}

// visibleTail 文本超出宽度时只显示末尾能放下的部分
// 返回可见文本和被隐藏的开头字符数
func visibleTail(s string, face text.Face, maxWidth float64) (string, int) {
	if utils.MeasureTextWidth(s, face) <= maxWidth {
		return s, 0
	}
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if utils.MeasureTextWidth(string(runes[i:]), face) <= maxWidth {
			return string(runes[i:]), i
		}
	}
	return "", len(runes)
}
