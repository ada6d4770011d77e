package systems

import (
	"math"
	"testing"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/game"
)

// TestLayerFade 图层在一秒内淡出
func TestLayerFade(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLayerFadeSystem(em)

	home := components.NewLayerComponent(game.Layer{Kind: game.LayerHome, Z: 50, Threshold: 0}, 0)
	start := components.NewLayerComponent(game.Layer{Kind: game.LayerStart, Z: 49, Threshold: 1}, 0)
	end := components.NewLayerComponent(game.Layer{Kind: game.LayerEnd, Z: 10, AlwaysVisible: true}, 0)
	for _, l := range []*components.LayerComponent{home, start, end} {
		ecs.AddComponent(em, em.CreateEntity(), l)
	}

	if home.Alpha != 1 || start.Alpha != 1 || end.Alpha != 1 {
		t.Fatal("visible layers should start opaque")
	}

	// step 0 -> 1：首页开始淡出
	system.Update(0.5, 1)
	if home.Progress != 0.5 {
		t.Errorf("home.Progress = %v, want 0.5", home.Progress)
	}
	if home.Alpha <= 0 || home.Alpha >= 1 {
		t.Errorf("home.Alpha = %v, want between 0 and 1", home.Alpha)
	}
	if start.Alpha != 1 {
		t.Errorf("start.Alpha = %v, want 1", start.Alpha)
	}

	system.Update(0.5, 1)
	if home.Alpha != 0 {
		t.Errorf("home.Alpha = %v after 1s, want 0", home.Alpha)
	}

	// 不会越过 0
	system.Update(0.5, 1)
	if home.Progress != 0 {
		t.Errorf("home.Progress = %v, want 0", home.Progress)
	}
	if end.Alpha != 1 {
		t.Error("end layer must stay visible")
	}
}

// TestLayerInitialHidden 初始不可见的图层从透明开始
func TestLayerInitialHidden(t *testing.T) {
	l := components.NewLayerComponent(game.Layer{Z: 39, Threshold: 3}, 5)
	if l.Alpha != 0 || l.Progress != 0 {
		t.Errorf("hidden layer alpha = %v progress = %v", l.Alpha, l.Progress)
	}
}

// TestLabelFade 标签按自身时长淡入淡出
func TestLabelFade(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLayerFadeSystem(em)

	errLabel := &components.LabelComponent{Text: "答錯囉", Visible: true, FadeDuration: 0.3}
	nameLabel := &components.LabelComponent{Text: "Alice", Visible: true}
	ecs.AddComponent(em, em.CreateEntity(), errLabel)
	ecs.AddComponent(em, em.CreateEntity(), nameLabel)

	system.Update(0.15, 0)
	if math.Abs(errLabel.Alpha-0.5) > 1e-9 {
		t.Errorf("errLabel.Alpha = %v, want 0.5", errLabel.Alpha)
	}
	if nameLabel.Alpha != 1 {
		t.Errorf("label without fade should switch immediately, got %v", nameLabel.Alpha)
	}

	system.Update(0.3, 0)
	if errLabel.Alpha != 1 {
		t.Errorf("errLabel.Alpha = %v, want 1", errLabel.Alpha)
	}

	errLabel.Visible = false
	system.Update(0.3, 0)
	if errLabel.Alpha != 0 {
		t.Errorf("errLabel.Alpha = %v after fade out, want 0", errLabel.Alpha)
	}
}
