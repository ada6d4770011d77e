package config

import (
	"fmt"
	"image"
)

// 布局配置
// 所有位置均为相对画面尺寸的百分比（10 表示 10%），与背景图一起缩放
//
// 水平方向：Left 优先，其次 Right；垂直方向：Top 优先，其次 Bottom

// RelRect 相对矩形
// 指针字段用于区分"未设置"与"设置为 0"
type RelRect struct {
	Top    *float64 `yaml:"top,omitempty"`
	Bottom *float64 `yaml:"bottom,omitempty"`
	Left   *float64 `yaml:"left,omitempty"`
	Right  *float64 `yaml:"right,omitempty"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
}

// LayoutConfig 各场景的热点布局
type LayoutConfig struct {
	Home  HomeLayout  `yaml:"home"`
	Start StartLayout `yaml:"start"`
	Name  NameLayout  `yaml:"name"`
	Game  GameLayout  `yaml:"game"`
	End   EndLayout   `yaml:"end"`
}

// HomeLayout 首页：一个透明按钮
type HomeLayout struct {
	Button RelRect `yaml:"button"`
}

// StartLayout 开始页：一个透明按钮
type StartLayout struct {
	Button RelRect `yaml:"button"`
}

// NameLayout 名字输入页
type NameLayout struct {
	Input  RelRect `yaml:"input"`
	Button RelRect `yaml:"button"`
}

// GameLayout 问答页（所有关卡共用）
type GameLayout struct {
	Input1    RelRect `yaml:"input1"`    // 上方输入框（歌词）
	Input2    RelRect `yaml:"input2"`    // 下方输入框（歌名）
	BtnMusic  RelRect `yaml:"btnMusic"`  // 播放声音按钮
	BtnSubmit RelRect `yaml:"btnSubmit"` // 送出按钮
	ErrorTop  float64 `yaml:"errorTop"`  // 错误提示的顶部位置（百分比）
}

// EndLayout 结束页
type EndLayout struct {
	NameDisplay RelRect `yaml:"nameDisplay"`
}

// Pct 返回百分比指针，便于在代码中构造 RelRect
func Pct(v float64) *float64 {
	return &v
}

// Resolve 将相对矩形换算为画面像素矩形
func (r RelRect) Resolve(screenW, screenH int) image.Rectangle {
	w := float64(screenW)
	h := float64(screenH)

	width := r.Width / 100 * w
	height := r.Height / 100 * h

	var x, y float64
	switch {
	case r.Left != nil:
		x = *r.Left / 100 * w
	case r.Right != nil:
		x = w - *r.Right/100*w - width
	}
	switch {
	case r.Top != nil:
		y = *r.Top / 100 * h
	case r.Bottom != nil:
		y = h - *r.Bottom/100*h - height
	}

	return image.Rect(int(x+0.5), int(y+0.5), int(x+width+0.5), int(y+height+0.5))
}

// IsZero 矩形是否未配置
func (r RelRect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

func (r RelRect) validate(name string) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("layout.%s: width and height must be positive", name)
	}
	if r.Left == nil && r.Right == nil {
		return fmt.Errorf("layout.%s: one of left/right is required", name)
	}
	if r.Top == nil && r.Bottom == nil {
		return fmt.Errorf("layout.%s: one of top/bottom is required", name)
	}
	return nil
}

// DefaultLayout 返回与原版图片对齐的默认布局
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Home: HomeLayout{
			Button: RelRect{Bottom: Pct(10), Left: Pct(30), Width: 40, Height: 8},
		},
		Start: StartLayout{
			Button: RelRect{Bottom: Pct(8), Left: Pct(33), Width: 34, Height: 8},
		},
		Name: NameLayout{
			Input:  RelRect{Bottom: Pct(23), Left: Pct(20), Width: 60, Height: 6},
			Button: RelRect{Bottom: Pct(11), Left: Pct(42), Width: 15, Height: 6},
		},
		Game: GameLayout{
			Input1:    RelRect{Bottom: Pct(22), Left: Pct(20), Width: 60, Height: 6},
			Input2:    RelRect{Bottom: Pct(14.5), Left: Pct(20), Width: 60, Height: 6},
			BtnMusic:  RelRect{Bottom: Pct(40), Left: Pct(56), Width: 13, Height: 9},
			BtnSubmit: RelRect{Bottom: Pct(7), Right: Pct(43), Width: 14, Height: 6},
			ErrorTop:  58,
		},
		End: EndLayout{
			NameDisplay: RelRect{Bottom: Pct(23), Left: Pct(18), Width: 65, Height: 6},
		},
	}
}

// applyDefaults 未配置的矩形使用默认布局
func (l *LayoutConfig) applyDefaults() {
	def := DefaultLayout()
	fill := func(dst *RelRect, src RelRect) {
		if dst.IsZero() {
			*dst = src
		}
	}
	fill(&l.Home.Button, def.Home.Button)
	fill(&l.Start.Button, def.Start.Button)
	fill(&l.Name.Input, def.Name.Input)
	fill(&l.Name.Button, def.Name.Button)
	fill(&l.Game.Input1, def.Game.Input1)
	fill(&l.Game.Input2, def.Game.Input2)
	fill(&l.Game.BtnMusic, def.Game.BtnMusic)
	fill(&l.Game.BtnSubmit, def.Game.BtnSubmit)
	fill(&l.End.NameDisplay, def.End.NameDisplay)
	if l.Game.ErrorTop == 0 {
		l.Game.ErrorTop = def.Game.ErrorTop
	}
}

func (l *LayoutConfig) validate() error {
	rects := []struct {
		name string
		rect RelRect
	}{
		{"home.button", l.Home.Button},
		{"start.button", l.Start.Button},
		{"name.input", l.Name.Input},
		{"name.button", l.Name.Button},
		{"game.input1", l.Game.Input1},
		{"game.input2", l.Game.Input2},
		{"game.btnMusic", l.Game.BtnMusic},
		{"game.btnSubmit", l.Game.BtnSubmit},
		{"end.nameDisplay", l.End.NameDisplay},
	}
	for _, r := range rects {
		if err := r.rect.validate(r.name); err != nil {
			return err
		}
	}
	if l.Game.ErrorTop < 0 || l.Game.ErrorTop > 100 {
		return fmt.Errorf("layout.game.errorTop must be within 0-100, got %v", l.Game.ErrorTop)
	}
	return nil
}
