package game

import (
	"fmt"
	"time"

	"github.com/decker502/ticketquiz/pkg/config"
)

// Clock 返回当前时间，测试中可替换
type Clock func() time.Time

// CountdownGate 倒数遮罩
//
// 每秒比较一次目标时间与当前时间：
//   - 目标在未来：遮罩显示，阻挡所有输入，显示剩余时分秒
//   - 目标已过：遮罩隐藏
//
// 每次都重新比较，系统时钟被调回时遮罩会重新出现（已知行为，不做修正）
type CountdownGate struct {
	target    time.Time
	interval  time.Duration
	nextCheck time.Time
	checked   bool

	locked bool
	text   string
}

// NewCountdownGate 创建倒数遮罩
func NewCountdownGate(target time.Time) *CountdownGate {
	return &CountdownGate{
		target:   target,
		interval: config.CountdownInterval,
		locked:   true,
	}
}

// SetTarget 更换目标时间（配置热重载），下一次 Update 立即重新计算
func (g *CountdownGate) SetTarget(target time.Time) {
	g.target = target
	g.checked = false
}

// Target 返回目标时间
func (g *CountdownGate) Target() time.Time {
	return g.target
}

// Update 第一次调用立即计算，之后每隔一秒重新计算
// 返回 true 表示本次进行了重新计算
func (g *CountdownGate) Update(now time.Time) bool {
	if g.checked && now.Before(g.nextCheck) && !now.Before(g.nextCheck.Add(-g.interval)) {
		return false
	}
	g.checked = true
	g.nextCheck = now.Add(g.interval)

	remaining := g.target.Sub(now)
	if remaining <= 0 {
		g.locked = false
		g.text = ""
		return true
	}
	g.locked = true
	g.text = FormatRemaining(remaining)
	return true
}

// Locked 遮罩是否显示
func (g *CountdownGate) Locked() bool {
	return g.locked
}

// Text 剩余时间文字，解锁后为空
func (g *CountdownGate) Text() string {
	return g.text
}

// FormatRemaining 将剩余时间格式化为 "X時Y分Z秒"
// 小时不按天进位，超过 24 小时直接累加
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / (1000 * 60 * 60)
	minutes := (ms % (1000 * 60 * 60)) / (1000 * 60)
	seconds := (ms % (1000 * 60)) / 1000
	return fmt.Sprintf("%d時%d分%d秒", hours, minutes, seconds)
}
