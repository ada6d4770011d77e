package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	entered      int
	closed       int
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) OnEnter() { m.entered++ }
func (m *MockScene) Close()   { m.closed++ }

// plainScene 不实现可选接口
type plainScene struct{}

func (plainScene) Update(float64)      {}
func (plainScene) Draw(*ebiten.Image) {}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Close()
}

// TestSceneManagerUpdateDraw verifies Update and Draw reach the current scene.
func TestSceneManagerUpdateDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016
	sm.Update(deltaTime)
	sm.Draw(nil)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerLifecycle 切换场景时调用 OnEnter / Close
func TestSceneManagerLifecycle(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	if scene1.entered != 1 {
		t.Errorf("Expected scene1 entered once, got %d", scene1.entered)
	}

	// 切换到同一场景不重复触发
	sm.SwitchTo(scene1)
	if scene1.entered != 1 || scene1.closed != 0 {
		t.Errorf("Switching to the same scene should be a no-op, entered=%d closed=%d", scene1.entered, scene1.closed)
	}

	sm.SwitchTo(scene2)
	if scene1.closed != 1 {
		t.Errorf("Expected scene1 closed once, got %d", scene1.closed)
	}
	if scene2.entered != 1 {
		t.Errorf("Expected scene2 entered once, got %d", scene2.entered)
	}

	sm.SwitchTo(plainScene{})
	if scene2.closed != 1 {
		t.Errorf("Expected scene2 closed once, got %d", scene2.closed)
	}

	sm.Close()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no current scene after Close")
	}
}
