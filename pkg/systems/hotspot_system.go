package systems

import (
	"log"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/utils"
)

// HotspotSystem 透明热区点击检测
//
// 职责：
//   - 只处理属于当前最上层可见图层的热区
//   - 维护悬停状态（供调用者设置光标形状）
//   - 点击时触发 OnClick，同一帧最多触发一个热区
type HotspotSystem struct {
	entityManager *ecs.EntityManager
}

// NewHotspotSystem 创建热区系统
func NewHotspotSystem(em *ecs.EntityManager) *HotspotSystem {
	return &HotspotSystem{entityManager: em}
}

// Update 处理指针输入，返回指针是否悬停在可点击热区上
func (s *HotspotSystem) Update(activeZ int, input utils.InputState) bool {
	hovering := false
	clicked := false

	for _, id := range ecs.GetEntitiesWith1[*components.HotspotComponent](s.entityManager) {
		hotspot, _ := ecs.GetComponent[*components.HotspotComponent](s.entityManager, id)

		if hotspot.LayerZ != activeZ || !hotspot.Enabled {
			hotspot.Hovered = false
			continue
		}

		hotspot.Hovered = utils.InRect(input.X, input.Y, hotspot.Rect)
		if !hotspot.Hovered {
			continue
		}
		hovering = true

		if input.JustPressed && !clicked {
			clicked = true
			log.Printf("[HotspotSystem] Clicked %s at (%d, %d)", hotspot.Name, input.X, input.Y)
			if hotspot.OnClick != nil {
				hotspot.OnClick()
			}
		}
	}

	return hovering
}
