package main

import (
	"fmt"
	"log"

	"github.com/decker502/ticketquiz/internal/watch"
	"github.com/decker502/ticketquiz/pkg/app"
	"github.com/decker502/ticketquiz/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

// run 加载配置并启动游戏循环，窗口关闭后返回
func run(opts *Options) error {
	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	quiz, err := opts.loadQuiz(opts.configPath)
	if err != nil {
		return err
	}

	appCfg := app.Config{
		Verbose:    opts.verbose,
		Quiz:       quiz,
		Fullscreen: opts.fullscreen,
	}

	if opts.watch {
		watcher, err := watch.NewConfigWatcher(opts.configPath, opts.loadQuiz)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", opts.configPath, err)
		}
		defer watcher.Close()
		appCfg.Reloads = watcher.Configs()
	}

	gameApp, err := app.NewApp(appCfg)
	if err != nil {
		return err
	}
	defer gameApp.Close()

	w, h := app.WindowSize(quiz)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Ticket Quiz")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("[Main] Starting with %d levels, countdown target %s", len(quiz.Levels), quiz.StartTime)
	if err := ebiten.RunGame(gameApp); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}
