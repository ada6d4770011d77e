package systems

import (
	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/utils"
)

// LayerFadeSystem 图层与标签的淡入淡出
//
// 图层可见性只由 step 决定，本系统让不透明度在 LayerFadeDuration 内
// 沿 ease-in-out 曲线过渡到目标值。
type LayerFadeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLayerFadeSystem 创建淡入淡出系统
func NewLayerFadeSystem(em *ecs.EntityManager) *LayerFadeSystem {
	return &LayerFadeSystem{entityManager: em}
}

// Update 推进所有图层和标签的淡入淡出
func (s *LayerFadeSystem) Update(deltaTime float64, step int) {
	layerStep := deltaTime / config.LayerFadeDuration

	for _, id := range ecs.GetEntitiesWith1[*components.LayerComponent](s.entityManager) {
		layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)

		target := 0.0
		if layer.Layer.Visible(step) {
			target = 1.0
		}
		layer.Progress = utils.Approach(layer.Progress, target, layerStep)
		layer.Alpha = utils.EaseInOutCSS(layer.Progress)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LabelComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)

		target := 0.0
		if label.Visible {
			target = 1.0
		}
		if label.FadeDuration <= 0 {
			label.Alpha = target
			continue
		}
		label.Alpha = utils.Approach(label.Alpha, target, deltaTime/label.FadeDuration)
	}
}
