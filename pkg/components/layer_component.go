package components

import "github.com/decker502/ticketquiz/pkg/game"

// LayerComponent 全屏图层组件
//
// Progress 是线性淡入淡出进度（0 = 完全透明，1 = 完全不透明），
// Alpha 是经过缓动曲线后的实际绘制不透明度，由 LayerFadeSystem 维护。
type LayerComponent struct {
	Layer game.Layer

	Progress float64
	Alpha    float64
}

// NewLayerComponent 创建图层组件，初始不透明度取决于 step 时是否可见
func NewLayerComponent(layer game.Layer, step int) *LayerComponent {
	lc := &LayerComponent{Layer: layer}
	if layer.Visible(step) {
		lc.Progress = 1
		lc.Alpha = 1
	}
	return lc
}
