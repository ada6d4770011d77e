package components

import "image"

// HotspotComponent 透明点击热区
// 按钮图案已画在背景图上，热区本身不绘制任何内容
type HotspotComponent struct {
	Name    string          // 日志用名称
	Rect    image.Rectangle // 逻辑屏幕坐标
	LayerZ  int             // 所属图层的 Z，只有最上层可见图层的热区响应点击
	Enabled bool

	Hovered bool // 指针是否悬停（由 HotspotSystem 维护）

	OnClick func()
}
