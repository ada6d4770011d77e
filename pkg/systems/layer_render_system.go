package systems

import (
	"sort"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// LayerRenderSystem 图层渲染系统
//
// 按 Z 从低到高绘制所有不透明度大于 0 的图层，
// 每个图层绘制完背景图后立即绘制属于它的输入框和标签，
// 保证子元素跟随图层的叠放顺序和不透明度。
type LayerRenderSystem struct {
	entityManager *ecs.EntityManager
	images        ImageProvider
	inputs        *TextInputRenderSystem
	labels        *LabelRenderSystem
}

// NewLayerRenderSystem 创建图层渲染系统
func NewLayerRenderSystem(em *ecs.EntityManager, images ImageProvider, inputs *TextInputRenderSystem, labels *LabelRenderSystem) *LayerRenderSystem {
	return &LayerRenderSystem{
		entityManager: em,
		images:        images,
		inputs:        inputs,
		labels:        labels,
	}
}

// Draw 绘制所有图层
func (s *LayerRenderSystem) Draw(screen *ebiten.Image) {
	layers := s.sortedLayers()
	inputs := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)
	labels := ecs.GetEntitiesWith1[*components.LabelComponent](s.entityManager)

	for _, layer := range layers {
		if layer.Alpha <= 0 {
			continue
		}
		z := layer.Layer.Z

		if s.images != nil {
			drawContain(screen, s.images.GetImage(layer.Layer.Image), screen.Bounds(), layer.Alpha)
		}

		if s.inputs != nil {
			for _, id := range inputs {
				input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
				if input.LayerZ == z {
					s.inputs.DrawInputBox(screen, input, layer.Alpha)
				}
			}
		}

		if s.labels != nil {
			for _, id := range labels {
				label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
				if label.LayerZ == z {
					s.labels.DrawLabel(screen, label, layer.Alpha)
				}
			}
		}
	}
}

// sortedLayers 返回按 Z 升序排列的图层（底层先画）
func (s *LayerRenderSystem) sortedLayers() []*components.LayerComponent {
	ids := ecs.GetEntitiesWith1[*components.LayerComponent](s.entityManager)
	layers := make([]*components.LayerComponent, 0, len(ids))
	for _, id := range ids {
		layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
		layers = append(layers, layer)
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Layer.Z < layers[j].Layer.Z })
	return layers
}
