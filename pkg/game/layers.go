package game

import (
	"sort"

	"github.com/decker502/ticketquiz/pkg/config"
)

// LayerKind 图层种类
type LayerKind int

const (
	LayerHome LayerKind = iota
	LayerStart
	LayerName
	LayerLevel
	LayerEnd
)

func (k LayerKind) String() string {
	switch k {
	case LayerHome:
		return "home"
	case LayerStart:
		return "start"
	case LayerName:
		return "name"
	case LayerLevel:
		return "level"
	case LayerEnd:
		return "end"
	}
	return "unknown"
}

// 图层叠放顺序（数值大的在上）
const (
	zHome      = 50
	zStart     = 49
	zName      = 48
	zLevelBase = 40 // 关卡 i 的 z = zLevelBase - i
	zEnd       = 10
)

// Layer 全屏图层
//
// 所有图层同时存在、叠放绘制；图层可见当且仅当 step <= Threshold。
// 结束图层永远可见，位于最底层。
type Layer struct {
	Kind          LayerKind
	LevelID       int // 仅关卡图层有效（1 开始）
	Image         string
	Z             int
	Threshold     int
	AlwaysVisible bool
}

// Visible 图层在 step 时是否可见
func (l Layer) Visible(step int) bool {
	return l.AlwaysVisible || step <= l.Threshold
}

// BuildLayers 根据配置生成全部图层，按 Z 从高到低排序
// 图层图片引用已经过 ResolveAsset，与预加载使用的引用一致
func BuildLayers(cfg *config.QuizConfig) []Layer {
	layers := []Layer{
		{Kind: LayerHome, Image: cfg.ResolveAsset(cfg.Images.Home), Z: zHome, Threshold: StepHome},
		{Kind: LayerStart, Image: cfg.ResolveAsset(cfg.Images.Start), Z: zStart, Threshold: StepStart},
		{Kind: LayerName, Image: cfg.ResolveAsset(cfg.Images.Name), Z: zName, Threshold: StepName},
	}
	for _, level := range cfg.Levels {
		layers = append(layers, Layer{
			Kind:      LayerLevel,
			LevelID:   level.ID,
			Image:     cfg.ResolveAsset(level.Image),
			Z:         zLevelBase - level.ID,
			Threshold: LevelStep(level.ID),
		})
	}
	layers = append(layers, Layer{Kind: LayerEnd, Image: cfg.ResolveAsset(cfg.Images.End), Z: zEnd, AlwaysVisible: true})

	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Z > layers[j].Z })
	return layers
}

// FrontmostInteractive 返回 step 时接收输入的图层（最上层的可见图层）
func FrontmostInteractive(layers []Layer, step int) (Layer, bool) {
	var front Layer
	found := false
	for _, l := range layers {
		if !l.Visible(step) {
			continue
		}
		if !found || l.Z > front.Z {
			front = l
			found = true
		}
	}
	return front, found
}
