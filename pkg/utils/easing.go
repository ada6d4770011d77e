package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/ 、https://www.w3.org/TR/css-easing-1/

// CubicBezier 返回 CSS cubic-bezier(x1, y1, x2, y2) 缓动函数
// 端点固定为 (0,0) 和 (1,1)，x1、x2 需在 [0, 1] 内
func CubicBezier(x1, y1, x2, y2 float64) func(t float64) float64 {
	bezier := func(a1, a2, s float64) float64 {
		// B(s) = 3(1-s)²s·a1 + 3(1-s)s²·a2 + s³
		inv := 1 - s
		return 3*inv*inv*s*a1 + 3*inv*s*s*a2 + s*s*s
	}
	slope := func(a1, a2, s float64) float64 {
		inv := 1 - s
		return 3*inv*inv*a1 + 6*inv*s*(a2-a1) + 3*s*s*(1-a2)
	}

	return func(t float64) float64 {
		t = Clamp01(t)
		if t == 0 || t == 1 {
			return t
		}

		// 牛顿迭代求 x(s) = t，失败时退回二分
		s := t
		for i := 0; i < 8; i++ {
			dx := bezier(x1, x2, s) - t
			if math.Abs(dx) < 1e-6 {
				return bezier(y1, y2, s)
			}
			d := slope(x1, x2, s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 30; i++ {
			x := bezier(x1, x2, s)
			if math.Abs(x-t) < 1e-6 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return bezier(y1, y2, s)
	}
}

// EaseInOutCSS 网页 ease-in-out 过渡曲线 cubic-bezier(0.4, 0, 0.2, 1)
var EaseInOutCSS = CubicBezier(0.4, 0, 0.2, 1)

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Approach 让 current 以 step 的步长逼近 target，不越过
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}
