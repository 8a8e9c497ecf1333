package components

import "image/color"

// ConfettiParticle 完成时爆发的一片彩纸
//
// 彩纸没有生命周期：生成后一直下落，直到完整重置时随列表一起清除。
// This is a pure data component - ParticleSystem owns all behaviour.
type ConfettiParticle struct {
	// Position (世界坐标)
	X float64
	Y float64

	// VelocityY 每帧下落距离（非负）
	VelocityY float64

	// Rotation 当前旋转角度（弧度），每帧按固定增量增加
	Rotation float64

	// Size 彩纸宽度，高度为宽度的 0.6 倍
	Size float64

	Color color.RGBA
}
