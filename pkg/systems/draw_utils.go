package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FontFunc 按字号返回字体（实现方负责缓存），返回 nil 时不绘制文字
type FontFunc func(size float64) text.Face

// ImageProvider 按引用返回已加载的图片，未加载时返回 nil
type ImageProvider interface {
	GetImage(ref string) *ebiten.Image
}

// fade 按不透明度缩放颜色（预乘 alpha，四个通道同比缩放）
func fade(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.Transparent
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

// drawBox 绘制带边框的矩形
func drawBox(screen *ebiten.Image, r image.Rectangle, fill, border color.Color, borderWidth float32) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	if fill != nil {
		vector.DrawFilledRect(screen, x, y, w, h, fill, true)
	}
	if border != nil && borderWidth > 0 {
		vector.StrokeRect(screen, x, y, w, h, borderWidth, border, true)
	}
}

// drawCenteredText 在 (cx, cy) 处居中绘制单行文字
func drawCenteredText(screen *ebiten.Image, txt string, face text.Face, cx, cy float64, clr color.Color, alpha float64) {
	if face == nil || txt == "" || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, txt, face, op)
}

// drawContain 按 object-contain 方式把图片绘制到 bounds 内（等比缩放、居中）
func drawContain(screen, img *ebiten.Image, bounds image.Rectangle, alpha float64) {
	if img == nil || alpha <= 0 {
		return
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	scale := min(float64(bounds.Dx())/float64(iw), float64(bounds.Dy())/float64(ih))
	dw, dh := float64(iw)*scale, float64(ih)*scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(bounds.Min.X)+(float64(bounds.Dx())-dw)/2, float64(bounds.Min.Y)+(float64(bounds.Dy())-dh)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
