package game

import "time"

// Clock 动画时钟
//
// Now 返回自时钟创建以来单调递增的时间，用于 StartDelay 比较和触发延迟判断。
type Clock interface {
	Now() time.Duration
}

// WallClock 基于真实时间的单调时钟
type WallClock struct {
	start time.Time
}

// NewWallClock 创建从当前时刻开始计时的时钟
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间（time.Since 使用单调时钟读数）
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock 手动推进的时钟
// 用于测试和按固定帧长回放
type ManualClock struct {
	now time.Duration
}

// NewManualClock 创建停在 0 时刻的手动时钟
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now 返回当前手动设定的时间
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance 将时钟向前推进 d（负值被忽略，保持单调）
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}
