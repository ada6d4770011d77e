package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one top-level screen (loading screen, quiz).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，场景成为当前场景时调用 OnEnter
type Enterable interface {
	OnEnter()
}

// Closable 是一个可选接口，场景被替换或程序退出时调用 Close
// 用于停止计时器、音乐等随场景存在的资源
type Closable interface {
	Close()
}
