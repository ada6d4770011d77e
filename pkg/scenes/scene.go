package scenes

import (
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is a type alias for game.Scene so callers only import this package.
type Scene = game.Scene

// newBackdrop 创建背景渐变（1 像素宽，绘制时横向拉伸）
func newBackdrop(height int) *ebiten.Image {
	return ebiten.NewImageFromImage(utils.NewVerticalGradient(1, height, config.GradientTop, config.GradientBottom))
}

// drawBackdrop 将背景渐变铺满整个画面
func drawBackdrop(screen, backdrop *ebiten.Image) {
	if backdrop == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	bw, bh := backdrop.Bounds().Dx(), backdrop.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(backdrop, op)
}
