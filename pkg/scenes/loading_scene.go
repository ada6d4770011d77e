package scenes

import (
	"log"

	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// ReadyChecker 预加载状态（*game.Preloader 实现）
type ReadyChecker interface {
	Ready() bool
}

// LoadingScene 首页图片加载完成前显示的空白渐变画面
//
// 首页图片加载结束（无论成败）后切换到 next 创建的场景，
// 避免在图片未就绪时闪现空白图层。
type LoadingScene struct {
	sceneManager *game.SceneManager
	preloader    ReadyChecker
	next         func() game.Scene

	backdrop    *ebiten.Image
	elapsedTime float64
	switched    bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(sm *game.SceneManager, preloader ReadyChecker, screenHeight int, next func() game.Scene) *LoadingScene {
	return &LoadingScene{
		sceneManager: sm,
		preloader:    preloader,
		next:         next,
		backdrop:     newBackdrop(screenHeight),
	}
}

// Update 检查预加载状态，就绪后切换场景
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime
	if s.switched || !s.preloader.Ready() {
		return
	}
	s.switched = true
	log.Printf("[LoadingScene] Home image settled after %.2fs, switching scene", s.elapsedTime)
	s.sceneManager.SwitchTo(s.next())
}

// Draw 只绘制背景渐变
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	drawBackdrop(screen, s.backdrop)
}
