//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译，assets/ 需要先复制到本目录：
//
//	# Android
//	cp -r assets mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.ticketquiz -o build/android/ticketquiz.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r assets mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/TicketQuiz.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/ticketquiz/pkg/app"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/embedded"
)

func init() {
	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	quiz, err := config.LoadEmbeddedQuizConfig()
	if err != nil {
		log.Fatalf("问答配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
		Quiz:    quiz,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
