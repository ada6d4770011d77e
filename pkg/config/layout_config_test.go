package config

import (
	"image"
	"strings"
	"testing"
)

// TestRelRectResolve 测试相对矩形换算
func TestRelRectResolve(t *testing.T) {
	tests := []struct {
		name string
		rect RelRect
		want image.Rectangle
	}{
		{
			name: "bottom-left anchored",
			rect: RelRect{Bottom: Pct(10), Left: Pct(30), Width: 40, Height: 8},
			// y = 1000 - 100 - 80 = 820
			want: image.Rect(225, 820, 525, 900),
		},
		{
			name: "bottom-right anchored",
			rect: RelRect{Bottom: Pct(7), Right: Pct(43), Width: 14, Height: 6},
			// x = 750 - 322.5 - 105 = 322.5
			want: image.Rect(323, 870, 428, 930),
		},
		{
			name: "top-left anchored",
			rect: RelRect{Top: Pct(0), Left: Pct(0), Width: 100, Height: 100},
			want: image.Rect(0, 0, 750, 1000),
		},
		{
			name: "left wins over right",
			rect: RelRect{Top: Pct(50), Left: Pct(10), Right: Pct(10), Width: 10, Height: 10},
			want: image.Rect(75, 500, 150, 600),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Resolve(750, 1000)
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDefaultLayoutValid 默认布局必须通过校验
func TestDefaultLayoutValid(t *testing.T) {
	l := DefaultLayout()
	if err := l.validate(); err != nil {
		t.Fatalf("DefaultLayout() invalid: %v", err)
	}
}

// TestLayoutApplyDefaults 只补全未配置的矩形
func TestLayoutApplyDefaults(t *testing.T) {
	custom := RelRect{Top: Pct(1), Left: Pct(1), Width: 5, Height: 5}
	l := LayoutConfig{Home: HomeLayout{Button: custom}}
	l.applyDefaults()

	if l.Home.Button.Width != 5 {
		t.Errorf("Expected custom home button kept, got width %v", l.Home.Button.Width)
	}
	if l.Start.Button.Width != 34 {
		t.Errorf("Expected default start button, got width %v", l.Start.Button.Width)
	}
}

// TestLayoutValidateErrors 测试布局校验错误
func TestLayoutValidateErrors(t *testing.T) {
	l := DefaultLayout()
	l.Name.Input = RelRect{Width: 10, Height: 10, Top: Pct(1)}
	err := l.validate()
	if err == nil || !strings.Contains(err.Error(), "name.input") {
		t.Errorf("Expected name.input error, got %v", err)
	}

	l = DefaultLayout()
	l.Game.ErrorTop = 120
	if err := l.validate(); err == nil {
		t.Error("Expected errorTop range error")
	}
}
