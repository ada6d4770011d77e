package systems

import (
	"image"
	"testing"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/utils"
)

func addHotspot(em *ecs.EntityManager, name string, z int, rect image.Rectangle, onClick func()) *components.HotspotComponent {
	h := &components.HotspotComponent{Name: name, Rect: rect, LayerZ: z, Enabled: true, OnClick: onClick}
	ecs.AddComponent(em, em.CreateEntity(), h)
	return h
}

// TestHotspotClick 只有当前图层的热区响应点击
func TestHotspotClick(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewHotspotSystem(em)

	var clicked []string
	addHotspot(em, "home", 50, image.Rect(225, 820, 525, 900), func() { clicked = append(clicked, "home") })
	addHotspot(em, "start", 49, image.Rect(225, 820, 525, 900), func() { clicked = append(clicked, "start") })

	tests := []struct {
		name    string
		activeZ int
		input   utils.InputState
		want    []string
		hover   bool
	}{
		{"悬停不触发", 50, utils.InputState{X: 300, Y: 850}, nil, true},
		{"点击当前图层", 50, utils.InputState{X: 300, Y: 850, JustPressed: true}, []string{"home"}, true},
		{"点击热区外", 50, utils.InputState{X: 10, Y: 10, JustPressed: true}, nil, false},
		{"下一图层", 49, utils.InputState{X: 300, Y: 850, JustPressed: true}, []string{"start"}, true},
		{"没有热区的图层", 48, utils.InputState{X: 300, Y: 850, JustPressed: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clicked = nil
			hover := system.Update(tt.activeZ, tt.input)
			if hover != tt.hover {
				t.Errorf("hover = %v, want %v", hover, tt.hover)
			}
			if len(clicked) != len(tt.want) {
				t.Fatalf("clicked = %v, want %v", clicked, tt.want)
			}
			for i := range clicked {
				if clicked[i] != tt.want[i] {
					t.Errorf("clicked = %v, want %v", clicked, tt.want)
				}
			}
		})
	}
}

// TestHotspotOneClickPerFrame 重叠热区同一帧只触发一个
func TestHotspotOneClickPerFrame(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewHotspotSystem(em)

	count := 0
	addHotspot(em, "a", 39, image.Rect(0, 0, 100, 100), func() { count++ })
	addHotspot(em, "b", 39, image.Rect(50, 50, 150, 150), func() { count++ })

	system.Update(39, utils.InputState{X: 75, Y: 75, JustPressed: true})
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

// TestHotspotDisabled 禁用的热区不响应
func TestHotspotDisabled(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewHotspotSystem(em)

	clicked := false
	h := addHotspot(em, "submit", 39, image.Rect(0, 0, 100, 100), func() { clicked = true })
	h.Enabled = false

	if system.Update(39, utils.InputState{X: 10, Y: 10, JustPressed: true}) {
		t.Error("disabled hotspot should not report hover")
	}
	if clicked || h.Hovered {
		t.Error("disabled hotspot should not respond")
	}
}
