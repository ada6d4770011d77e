package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/decker502/ticketquiz/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// QuizConfig 问答内容配置
// 定义了场景图片、关卡答案摘要、热点布局和倒数目标时间
//
// 结构（assets/config/quiz.yaml）：
//
//	version: "1.0"
//	startTime: "2024-12-05T23:00:00+08:00"
//	assetBase: https://raw.githubusercontent.com/.../public
//	images: {home: home.png, start: start.png, name: name.png, end: end.png}
//	levels:
//	  - id: 1
//	    answers: [<sha256>, <sha256>]
//	    image: question_1.png
//	    music: music_1.mp3
//	layout: {...}
type QuizConfig struct {
	Version   string            `yaml:"version"`   // 配置文件版本
	StartTime string            `yaml:"startTime"` // 倒数目标时间（RFC 3339，必须带时区偏移）
	AssetBase string            `yaml:"assetBase"` // 相对资源引用的前缀（URL 或目录）
	FontPath  string            `yaml:"fontPath"`  // 文字字体（可选，为空使用内置字体）
	Screen    ScreenConfig      `yaml:"screen"`    // 逻辑画面尺寸
	Images    SceneImages       `yaml:"images"`    // 固定场景图片
	Levels    []LevelDefinition `yaml:"levels"`    // 关卡列表（按 id 升序）
	Layout    LayoutConfig      `yaml:"layout"`    // 热点与输入框布局
}

// ScreenConfig 逻辑画面尺寸（像素）
// Ebitengine 负责按窗口大小缩放并留黑边
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SceneImages 固定场景的背景图片引用
type SceneImages struct {
	Home  string `yaml:"home"`
	Start string `yaml:"start"`
	Name  string `yaml:"name"`
	End   string `yaml:"end"`
}

// LevelDefinition 单个问答关卡
// Answers 是两个答案规范化后的 SHA-256 摘要（64 位小写十六进制）
type LevelDefinition struct {
	ID      int      `yaml:"id"`      // 关卡序号（从 1 开始）
	Answers []string `yaml:"answers"` // 两个答案的摘要
	Image   string   `yaml:"image"`   // 题目图片引用
	Music   string   `yaml:"music"`   // 题目音乐引用
}

// 默认值
const (
	DefaultQuizConfigPath = "assets/config/quiz.yaml" // 嵌入的默认配置

	DefaultScreenWidth  = 750
	DefaultScreenHeight = 1000
	AnswersPerLevel     = 2
)

var digestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// LoadQuizConfig 从磁盘读取问答配置
func LoadQuizConfig(path string) (*QuizConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz config file %s: %w", path, err)
	}

	cfg, err := ParseQuizConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid quiz config in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEmbeddedQuizConfig 读取嵌入资源中的默认配置
func LoadEmbeddedQuizConfig() (*QuizConfig, error) {
	data, err := embedded.ReadFile(DefaultQuizConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded quiz config %s: %w", DefaultQuizConfigPath, err)
	}

	cfg, err := ParseQuizConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded quiz config: %w", err)
	}
	return cfg, nil
}

// Overrides 命令行或环境变量对配置的覆盖，空字段不覆盖
type Overrides struct {
	StartTime string
	AssetBase string
}

// Apply 将覆盖项写入配置
func (o Overrides) Apply(cfg *QuizConfig) error {
	if o.StartTime != "" {
		if _, err := ParseStartTime(o.StartTime); err != nil {
			return err
		}
		cfg.StartTime = o.StartTime
	}
	if o.AssetBase != "" {
		cfg.AssetBase = o.AssetBase
	}
	return nil
}

// ParseQuizConfig 解析 YAML 数据，应用默认值并校验
func ParseQuizConfig(data []byte) (*QuizConfig, error) {
	var cfg QuizConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse quiz config YAML: %w", err)
	}

	applyQuizDefaults(&cfg)

	if err := validateQuizConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyQuizDefaults 为缺失的可选字段设置默认值
func applyQuizDefaults(cfg *QuizConfig) {
	if cfg.Screen.Width == 0 {
		cfg.Screen.Width = DefaultScreenWidth
	}
	if cfg.Screen.Height == 0 {
		cfg.Screen.Height = DefaultScreenHeight
	}

	// 摘要统一为小写，作者粘贴大写十六进制也能匹配
	for i := range cfg.Levels {
		for j, d := range cfg.Levels[i].Answers {
			cfg.Levels[i].Answers[j] = strings.ToLower(strings.TrimSpace(d))
		}
	}

	cfg.Layout.applyDefaults()
}

// validateQuizConfig 校验配置完整性
func validateQuizConfig(cfg *QuizConfig) error {
	if cfg.Screen.Width < 0 || cfg.Screen.Height < 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}

	if _, err := ParseStartTime(cfg.StartTime); err != nil {
		return err
	}

	images := map[string]string{
		"home":  cfg.Images.Home,
		"start": cfg.Images.Start,
		"name":  cfg.Images.Name,
		"end":   cfg.Images.End,
	}
	for key, ref := range images {
		if ref == "" {
			return fmt.Errorf("images.%s is required", key)
		}
	}

	if len(cfg.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}

	for i, level := range cfg.Levels {
		if level.ID != i+1 {
			return fmt.Errorf("levels[%d]: id must be %d (ids are 1-based and ascending), got %d", i, i+1, level.ID)
		}
		if level.Image == "" {
			return fmt.Errorf("levels[%d]: image is required", i)
		}
		if len(level.Answers) != AnswersPerLevel {
			return fmt.Errorf("levels[%d]: exactly %d answer digests are required, got %d", i, AnswersPerLevel, len(level.Answers))
		}
		for j, d := range level.Answers {
			if !digestPattern.MatchString(d) {
				return fmt.Errorf("levels[%d].answers[%d]: not a SHA-256 hex digest: %q", i, j, d)
			}
		}
	}

	return cfg.Layout.validate()
}

// ParseStartTime 解析倒数目标时间
// 只接受带时区偏移的 RFC 3339 时间，避免依赖本机时区
func ParseStartTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("startTime is required")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("startTime %q must be RFC 3339 with a UTC offset: %w", s, err)
	}
	return t, nil
}

// Target 返回倒数目标时间（配置已校验，不会失败）
func (c *QuizConfig) Target() time.Time {
	t, _ := ParseStartTime(c.StartTime)
	return t
}

// ResolveAsset 将相对资源引用拼接到 AssetBase
//
// 以下引用原样返回：
//   - 带 scheme 的 URL（http://、https://）
//   - 嵌入资源路径（assets/ 开头）
//   - 绝对路径
func (c *QuizConfig) ResolveAsset(ref string) string {
	if ref == "" || c.AssetBase == "" {
		return ref
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "assets/") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return strings.TrimSuffix(c.AssetBase, "/") + "/" + strings.TrimPrefix(ref, "./")
}

// AllImages 返回所有场景图片引用（已解析），首页图片在第一位
func (c *QuizConfig) AllImages() []string {
	refs := []string{
		c.ResolveAsset(c.Images.Home),
		c.ResolveAsset(c.Images.Start),
		c.ResolveAsset(c.Images.Name),
		c.ResolveAsset(c.Images.End),
	}
	for _, level := range c.Levels {
		refs = append(refs, c.ResolveAsset(level.Image))
	}
	return refs
}

// DuplicateDigestLevels 返回答案摘要与前面某关完全相同的关卡 id
// 用于提醒作者：占位摘要尚未替换
func (c *QuizConfig) DuplicateDigestLevels() []int {
	seen := make(map[string]int)
	var dups []int
	for _, level := range c.Levels {
		key := strings.Join(level.Answers, ":")
		if _, ok := seen[key]; ok {
			dups = append(dups, level.ID)
			continue
		}
		seen[key] = level.ID
	}
	return dups
}
