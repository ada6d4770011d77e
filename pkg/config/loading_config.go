package config

import (
	"image/color"
	"time"
)

// 时间与外观常量

const (
	// LayerFadeDuration 图层淡入淡出时长（秒）
	LayerFadeDuration float64 = 1.0

	// ErrorFadeDuration 错误提示淡入淡出时长（秒）
	ErrorFadeDuration float64 = 0.3

	// ErrorDisplayDuration "答錯囉" 提示的显示时长
	ErrorDisplayDuration = 1 * time.Second

	// CursorBlinkInterval 输入框光标闪烁间隔（秒）
	CursorBlinkInterval float64 = 0.5

	// CountdownInterval 倒数遮罩的检查间隔
	CountdownInterval = 1 * time.Second

	// PreloadConcurrency 后台预加载的并发数
	PreloadConcurrency = 4

	// AssetFetchTimeout 单个网络资源的下载超时
	AssetFetchTimeout = 30 * time.Second

	// InputFontSize 输入框文字字体大小
	InputFontSize float64 = 26

	// CountdownFontSize 倒数文字字体大小
	CountdownFontSize float64 = 56

	// ErrorFontSize 错误提示字体大小
	ErrorFontSize float64 = 30

	// OverlayAlpha 倒数遮罩不透明度（黑色 90%）
	OverlayAlpha uint8 = 230

	// EndNameHeightRatio 结束页名字最大高度（相对显示框高度）
	EndNameHeightRatio float64 = 0.6

	// EndNameWidthRatio 结束页名字总宽度上限（相对显示框宽度）
	EndNameWidthRatio float64 = 0.9
)

// 文字提示
const (
	NamePlaceholder    = "建議複製貼上"
	Answer1Placeholder = "請輸入歌詞"
	Answer2Placeholder = "請輸入歌名"
	ErrorMessageText   = "答錯囉"

	// CountdownUnits 倒数文字中的单位
	CountdownUnits = "時分秒"

	// RequiredGlyphs 界面文字用到的全部汉字，字体缺字时启动日志会提示
	RequiredGlyphs = NamePlaceholder + Answer1Placeholder + Answer2Placeholder + ErrorMessageText + CountdownUnits
)

// 背景渐变（从上到下），图片未加载完成时显示
var (
	GradientTop    = color.RGBA{R: 0x4b, G: 0xc5, B: 0xf4, A: 0xff}
	GradientBottom = color.RGBA{R: 0x84, G: 0xbf, B: 0x65, A: 0xff}
)
