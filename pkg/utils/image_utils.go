package utils

import (
	"image"
	"image/color"
)

// LerpColor 在两种颜色之间线性插值，t 取值 0..1
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(Lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

// NewVerticalGradient 生成从上到下的线性渐变图片
//
// 返回普通的 image.RGBA，调用方用 ebiten.NewImageFromImage 上传一次后缩放绘制，
// 宽度通常取 1 即可
func NewVerticalGradient(width, height int, top, bottom color.RGBA) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := LerpColor(top, bottom, t)
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
