package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/ticketquiz/pkg/embedded"
)

const (
	digestZero = "5feceb66ffc86f38d952786c6d696c79c2dbc239dd4e91b46729d73a27fb57e9"
	digestA    = "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"
)

const minimalYAML = `startTime: "2024-12-05T23:00:00+08:00"
assetBase: "https://example.com/public/"
images: {home: home.png, start: start.png, name: name.png, end: end.png}
levels:
  - id: 1
    answers: [` + digestZero + `, ` + digestA + `]
    image: question_1.png
    music: music_1.mp3
  - id: 2
    answers: [` + digestZero + `, ` + digestZero + `]
    image: https://cdn.example.com/q2.png
    music: music_2.mp3
`

// TestParseQuizConfig 测试最小配置的解析与默认值
func TestParseQuizConfig(t *testing.T) {
	cfg, err := ParseQuizConfig([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("ParseQuizConfig() failed: %v", err)
	}

	if cfg.Screen.Width != DefaultScreenWidth || cfg.Screen.Height != DefaultScreenHeight {
		t.Errorf("Expected default screen %dx%d, got %dx%d",
			DefaultScreenWidth, DefaultScreenHeight, cfg.Screen.Width, cfg.Screen.Height)
	}
	if len(cfg.Levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(cfg.Levels))
	}
	if cfg.Layout.Game.ErrorTop != 58 {
		t.Errorf("Expected default errorTop 58, got %v", cfg.Layout.Game.ErrorTop)
	}
	if cfg.Layout.Home.Button.IsZero() {
		t.Error("Expected home button to fall back to default layout")
	}

	want := time.Date(2024, 12, 5, 15, 0, 0, 0, time.UTC)
	if !cfg.Target().Equal(want) {
		t.Errorf("Target() = %v, want %v", cfg.Target(), want)
	}
}

// TestParseQuizConfigUppercaseDigest 大写摘要会被规范化为小写
func TestParseQuizConfigUppercaseDigest(t *testing.T) {
	data := strings.Replace(minimalYAML, digestA, strings.ToUpper(digestA), 1)
	cfg, err := ParseQuizConfig([]byte(data))
	if err != nil {
		t.Fatalf("ParseQuizConfig() failed: %v", err)
	}
	if cfg.Levels[0].Answers[1] != digestA {
		t.Errorf("Expected lowercased digest, got %s", cfg.Levels[0].Answers[1])
	}
}

// TestParseQuizConfigInvalid 测试各类非法配置
func TestParseQuizConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing start time",
			mutate:  func(s string) string { return strings.Replace(s, `startTime: "2024-12-05T23:00:00+08:00"`, "", 1) },
			wantErr: "startTime is required",
		},
		{
			name:    "start time without offset",
			mutate:  func(s string) string { return strings.Replace(s, "+08:00", "", 1) },
			wantErr: "RFC 3339",
		},
		{
			name:    "missing end image",
			mutate:  func(s string) string { return strings.Replace(s, "end: end.png", "end: \"\"", 1) },
			wantErr: "images.end",
		},
		{
			name:    "bad digest",
			mutate:  func(s string) string { return strings.Replace(s, digestA, "nothex", 1) },
			wantErr: "not a SHA-256 hex digest",
		},
		{
			name:    "ids out of order",
			mutate:  func(s string) string { return strings.Replace(s, "id: 2", "id: 3", 1) },
			wantErr: "id must be 2",
		},
		{
			name: "single answer",
			mutate: func(s string) string {
				return strings.Replace(s, "["+digestZero+", "+digestA+"]", "["+digestZero+"]", 1)
			},
			wantErr: "exactly 2 answer digests",
		},
		{
			name:    "not yaml",
			mutate:  func(string) string { return "levels: [unclosed" },
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuizConfig([]byte(tt.mutate(minimalYAML)))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadQuizConfig 测试从文件加载
func TestLoadQuizConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadQuizConfig(path)
	if err != nil {
		t.Fatalf("LoadQuizConfig() failed: %v", err)
	}
	if cfg.Images.Home != "home.png" {
		t.Errorf("Expected home.png, got %s", cfg.Images.Home)
	}

	if _, err := LoadQuizConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestLoadBundledQuizConfig 随包发布的默认配置必须能通过校验
func TestLoadBundledQuizConfig(t *testing.T) {
	cfg, err := LoadQuizConfig(filepath.Join("..", "..", "assets", "config", "quiz.yaml"))
	if err != nil {
		t.Fatalf("bundled quiz.yaml is invalid: %v", err)
	}
	if len(cfg.Levels) != 6 {
		t.Errorf("Expected 6 levels, got %d", len(cfg.Levels))
	}
	// 占位摘要全部相同，作者工具应报告第 2-6 关
	if dups := cfg.DuplicateDigestLevels(); len(dups) != 5 {
		t.Errorf("Expected 5 duplicate levels, got %v", dups)
	}
}

// TestLoadEmbeddedQuizConfig 从嵌入文件系统读取默认配置
func TestLoadEmbeddedQuizConfig(t *testing.T) {
	embedded.Init(nil)
	if _, err := LoadEmbeddedQuizConfig(); err == nil {
		t.Error("Expected error before embedded.Init")
	}

	embedded.Init(os.DirFS(filepath.Join("..", "..")))
	defer embedded.Init(nil)

	cfg, err := LoadEmbeddedQuizConfig()
	if err != nil {
		t.Fatalf("LoadEmbeddedQuizConfig failed: %v", err)
	}
	if cfg.Screen.Width != DefaultScreenWidth || cfg.Screen.Height != DefaultScreenHeight {
		t.Errorf("Unexpected screen %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
}

// TestOverridesApply 测试命令行覆盖项
func TestOverridesApply(t *testing.T) {
	cfg, err := ParseQuizConfig([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("ParseQuizConfig failed: %v", err)
	}

	if err := (Overrides{}).Apply(cfg); err != nil {
		t.Fatalf("empty overrides failed: %v", err)
	}
	if cfg.AssetBase != "https://example.com/public/" {
		t.Errorf("empty override changed AssetBase to %q", cfg.AssetBase)
	}

	o := Overrides{StartTime: "2030-01-01T00:00:00Z", AssetBase: "/srv/quiz"}
	if err := o.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.StartTime != o.StartTime || cfg.AssetBase != o.AssetBase {
		t.Errorf("overrides not applied: %q %q", cfg.StartTime, cfg.AssetBase)
	}
	if want := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC); !cfg.Target().Equal(want) {
		t.Errorf("Target = %v, want %v", cfg.Target(), want)
	}

	if err := (Overrides{StartTime: "tomorrow"}).Apply(cfg); err == nil {
		t.Error("Expected error for invalid start time")
	}
	if cfg.StartTime != o.StartTime {
		t.Error("invalid override must not change the config")
	}
}

// TestResolveAsset 测试资源引用拼接
func TestResolveAsset(t *testing.T) {
	cfg := &QuizConfig{AssetBase: "https://example.com/public/"}

	tests := []struct {
		ref  string
		want string
	}{
		{"home.png", "https://example.com/public/home.png"},
		{"./music_1.mp3", "https://example.com/public/music_1.mp3"},
		{"https://cdn.example.com/q2.png", "https://cdn.example.com/q2.png"},
		{"assets/images/home.png", "assets/images/home.png"},
		{"/srv/quiz/home.png", "/srv/quiz/home.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cfg.ResolveAsset(tt.ref); got != tt.want {
			t.Errorf("ResolveAsset(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}

	local := &QuizConfig{}
	if got := local.ResolveAsset("home.png"); got != "home.png" {
		t.Errorf("Expected ref unchanged without base, got %q", got)
	}
}

// TestAllImagesHomeFirst 首页图片必须排在第一位（预加载顺序依赖）
func TestAllImagesHomeFirst(t *testing.T) {
	cfg, err := ParseQuizConfig([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("ParseQuizConfig() failed: %v", err)
	}
	refs := cfg.AllImages()
	if len(refs) != 6 {
		t.Fatalf("Expected 6 image refs, got %d", len(refs))
	}
	if refs[0] != "https://example.com/public/home.png" {
		t.Errorf("Expected home image first, got %s", refs[0])
	}
	if refs[5] != "https://cdn.example.com/q2.png" {
		t.Errorf("Expected absolute level image kept, got %s", refs[5])
	}
}
