// Package app 提供问答应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/decker502/ticketquiz/pkg/scenes"
	"github.com/decker502/ticketquiz/pkg/systems"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "ticketquiz"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Quiz 已加载并校验的问答配置
	Quiz *config.QuizConfig
	// Fullscreen 以全屏启动（否则使用上次保存的设置）
	Fullscreen bool
	// Reloads 热重载的配置（可为 nil）
	Reloads <-chan *config.QuizConfig
}

// App 是问答应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	quiz            *config.QuizConfig
	sceneManager    *game.SceneManager
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	quizScene       *scenes.QuizScene
	reloads         <-chan *config.QuizConfig

	ctx    context.Context
	cancel context.CancelFunc

	backdrop                 *ebiten.Image
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化问答应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Quiz == nil {
		return nil, fmt.Errorf("quiz config is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(game.NewMultiSource(), audioContext)

	// 设置存储（失败时降级为仅内存）
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage path: %s", path)
	}
	settingsManager := game.NewSettingsManager(game.OpenSettingsStorage(AppName))
	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	audioManager := game.NewAudioManager(ctx, resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	fonts, err := newFontCache(ctx, resourceManager, cfg.Quiz.ResolveAsset(cfg.Quiz.FontPath))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	a := &App{
		quiz:            cfg.Quiz,
		sceneManager:    game.NewSceneManager(),
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		reloads:         cfg.Reloads,
		ctx:             ctx,
		cancel:          cancel,
		backdrop:        ebiten.NewImageFromImage(utils.NewVerticalGradient(1, 256, config.GradientTop, config.GradientBottom)),
	}

	clipboard := systems.NewSystemClipboard()
	preloader := a.preload(cfg.Quiz)

	loadingScene := scenes.NewLoadingScene(a.sceneManager, preloader, cfg.Quiz.Screen.Height, func() game.Scene {
		a.quizScene = scenes.NewQuizScene(a.quiz, resourceManager, audioManager, fonts.Face, clipboard)
		return a.quizScene
	})
	a.sceneManager.SwitchTo(loadingScene)

	return a, nil
}

// preload 后台预加载配置中的所有图片，首页图片优先
func (a *App) preload(quiz *config.QuizConfig) *game.Preloader {
	images := quiz.AllImages()
	preloader := game.NewPreloader(a.resourceManager)
	preloader.Start(a.ctx, images[0], images[1:])
	return preloader
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.windowSize()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// Ctrl/Cmd+M 切换静音（单独的 M 在输入框中是普通字符）
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && utils.IsShortcutModifierPressed() {
		muted := a.audioManager.ToggleMute()
		log.Printf("[App] Muted: %v", muted)
	}

	select {
	case quiz, ok := <-a.reloads:
		if ok {
			a.applyConfig(quiz)
		} else {
			a.reloads = nil
		}
	default:
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(!a.settingsManager.GetSettings().Fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// applyConfig 应用热重载的配置
func (a *App) applyConfig(quiz *config.QuizConfig) {
	if quiz.FontPath != a.quiz.FontPath {
		log.Printf("[App] fontPath changes take effect after restart")
	}
	a.quiz = quiz
	a.preload(quiz)
	if a.quizScene != nil {
		a.quizScene.ApplyConfig(quiz)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 背景（与画面相同的渐变）
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	bw, bh := a.backdrop.Bounds().Dx(), a.backdrop.Bounds().Dy()
	bg := &ebiten.DrawImageOptions{}
	bg.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
	bg.Filter = ebiten.FilterLinear
	screen.DrawImage(a.backdrop, bg)

	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（默认 750x1000，3:4）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.quiz.Screen.Width, a.quiz.Screen.Height
}

// windowSize 桌面窗口初始尺寸
func (a *App) windowSize() (int, int) {
	return WindowSize(a.quiz)
}

// WindowSize 返回适合桌面显示的窗口尺寸（逻辑尺寸缩放到高度不超过 900）
func WindowSize(quiz *config.QuizConfig) (int, int) {
	w, h := quiz.Screen.Width, quiz.Screen.Height
	const maxHeight = 900
	if h > maxHeight {
		w = w * maxHeight / h
		h = maxHeight
	}
	return w, h
}

// Close 停止后台加载与音乐，关闭当前场景
func (a *App) Close() {
	a.cancel()
	a.sceneManager.Close()
	a.audioManager.Stop()
}
