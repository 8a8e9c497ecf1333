package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/render"
	"github.com/lucasb-eyer/go-colorful"
)

// 彩纸高宽比
const confettiAspect = 0.6

// ParticleSystem 完成时的彩纸爆发
//
// 彩纸没有生命周期，不会被移除，只在完整重置时随 SimulationState 一起清空。
type ParticleSystem struct{}

// NewParticleSystem 创建彩纸系统
func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

// Burst 一次性生成 Burst.Count 片彩纸，追加到现有列表
//
// 水平位置落在画布宽度的 [MinXRatio, MaxXRatio) 区间，垂直位置在画面上方。
func (ps *ParticleSystem) Burst(sim *game.SimulationState) {
	cfg := sim.Config.Burst
	width := float64(sim.Config.Canvas.Width)

	for i := 0; i < cfg.Count; i++ {
		sim.Particles = append(sim.Particles, components.ConfettiParticle{
			X:         randRange(sim, width*cfg.MinXRatio, width*cfg.MaxXRatio),
			Y:         randRange(sim, cfg.MinY, cfg.MaxY),
			VelocityY: randRange(sim, cfg.MinSpeed, cfg.MaxSpeed),
			Rotation:  randRange(sim, 0, 2*math.Pi),
			Size:      randRange(sim, cfg.MinSize, cfg.MaxSize),
			Color:     confettiColor(sim),
		})
	}

	log.Printf("[ParticleSystem] Confetti burst: %d particles (total %d)", cfg.Count, len(sim.Particles))
}

// Update 推进所有彩纸一帧：按各自速度下落，并按固定增量旋转
func (ps *ParticleSystem) Update(sim *game.SimulationState) {
	spin := sim.Config.Burst.Spin
	for i := range sim.Particles {
		p := &sim.Particles[i]
		p.Y += p.VelocityY
		p.Rotation += spin
	}
}

// Draw 绘制所有彩纸
func (ps *ParticleSystem) Draw(canvas render.Canvas, sim *game.SimulationState) {
	for _, p := range sim.Particles {
		canvas.FillRotatedRect(p.X, p.Y, p.Size, p.Size*confettiAspect, p.Rotation, p.Color)
	}
}

func randRange(sim *game.SimulationState, lo, hi float64) float64 {
	return lo + sim.Rand.Float64()*(hi-lo)
}

// confettiColor 随机色相的高饱和颜色
func confettiColor(sim *game.SimulationState) color.RGBA {
	c := colorful.Hsv(sim.Rand.Float64()*360, 0.65, 1.0)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
