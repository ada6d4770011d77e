package components

import "image"

// TextInputComponent 文本输入框组件
// 用于名字输入和两个答案输入
type TextInputComponent struct {
	// 输入框文本
	Text string // 当前输入的文本

	// 位置与外观
	Rect   image.Rectangle // 输入框区域（逻辑屏幕坐标）
	LayerZ int             // 所属图层的 Z
	Error  bool            // 是否以错误样式（红色边框）显示

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）

	// TabOrder 同一图层内 Tab 切换焦点的顺序
	TabOrder int

	// OnChange 文本变化回调（参数为新文本）
	OnChange func(text string)
	// OnSubmit 按下 Enter 时的回调
	OnSubmit func()
}
