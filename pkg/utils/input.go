// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的指针输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置（逻辑屏幕坐标）
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
}

// Point 返回指针位置
func (s InputState) Point() image.Point {
	return image.Pt(s.X, s.Y)
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 检查是否有活动的触摸（用于悬停检测）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return state
}

// InRect 点是否在矩形内（含左上边界，不含右下边界）
func InRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

// KeyRepeat 按住按键时的重复触发判定
// 第1帧立即响应，按住 30 帧后每 3 帧响应一次
func KeyRepeat(key ebiten.Key) bool {
	return repeatFrame(inpututil.KeyPressDuration(key))
}

func repeatFrame(duration int) bool {
	return duration == 1 || (duration >= 30 && duration%3 == 0)
}

// IsShortcutModifierPressed Ctrl（macOS 上为 Cmd）是否按下
func IsShortcutModifierPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}
