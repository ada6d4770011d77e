package systems

import (
	"image"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 标签底框内边距（像素）
const labelPadding = 10

// LabelRenderSystem 文字标签渲染系统
type LabelRenderSystem struct {
	font FontFunc
}

// NewLabelRenderSystem 创建标签渲染系统
func NewLabelRenderSystem(font FontFunc) *LabelRenderSystem {
	return &LabelRenderSystem{font: font}
}

// LabelFontSize 计算标签字号
func LabelFontSize(label *components.LabelComponent) float64 {
	if label.Sizing == components.LabelFitRect {
		return utils.FitFontSize(label.Text, float64(label.Rect.Dx()), float64(label.Rect.Dy()),
			config.EndNameHeightRatio, config.EndNameWidthRatio)
	}
	return label.FontSize
}

// DrawLabel 绘制单个标签，layerAlpha 为所属图层的不透明度
func (s *LabelRenderSystem) DrawLabel(screen *ebiten.Image, label *components.LabelComponent, layerAlpha float64) {
	alpha := layerAlpha * label.Alpha
	if alpha <= 0 || label.Text == "" || s.font == nil {
		return
	}
	size := LabelFontSize(label)
	if size <= 0 {
		return
	}
	face := s.font(size)
	if face == nil {
		return
	}

	cx := float64(label.Rect.Min.X) + float64(label.Rect.Dx())/2
	cy := float64(label.Rect.Min.Y) + float64(label.Rect.Dy())/2

	txt := label.Text
	if label.Sizing == components.LabelFitRect {
		// 超出显示框的部分隐藏
		txt = utils.TruncateToWidth(txt, face, float64(label.Rect.Dx()))
	}

	if label.Background != nil || label.Border != nil {
		w := utils.MeasureTextWidth(txt, face)
		box := image.Rect(
			int(cx-w/2)-labelPadding*2, int(cy-size/2)-labelPadding,
			int(cx+w/2)+labelPadding*2, int(cy+size/2)+labelPadding,
		)
		fill, border := label.Background, label.Border
		if fill != nil {
			fill = fade(fill, alpha)
		}
		if border != nil {
			border = fade(border, alpha)
		}
		drawBox(screen, box, fill, border, 1)
	}

	drawCenteredText(screen, txt, face, cx, cy, label.TextColor, alpha)
}
