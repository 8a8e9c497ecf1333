package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/render"
)

var (
	backgroundColor = color.RGBA{7, 16, 41, 255}
	groundColor     = color.RGBA{20, 30, 60, 255}
	hudColor        = color.RGBA{200, 200, 200, 255}
)

const (
	hudX          = 12.0
	hudY          = 12.0
	hudTextSize   = 12.0
	hudLineHeight = 16.0
)

// RenderSystem 每帧绘制：背景 → 地面 → 全部步骤 → 彩纸（仅 finished）→ 状态文字
type RenderSystem struct {
	particles *ParticleSystem
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(particles *ParticleSystem) *RenderSystem {
	return &RenderSystem{particles: particles}
}

// Draw 绘制一帧
//
// 参数：
//   - canvas: 绘制目标
//   - sim: 模拟状态（只读）
//   - extraHUD: 附加在状态行下方的文字行
func (rs *RenderSystem) Draw(canvas render.Canvas, sim *game.SimulationState, extraHUD ...string) {
	width, height := canvas.Size()
	ground := float64(sim.Config.Canvas.GroundHeight)

	canvas.Fill(backgroundColor)
	canvas.FillRect(0, height-ground, width, ground, groundColor)

	for _, step := range sim.Steps {
		DrawStep(canvas, step)
	}

	if sim.State == game.StateFinished {
		rs.particles.Draw(canvas, sim)
	}

	canvas.DrawText(StatusLine(sim), hudX, hudY, hudTextSize, render.AlignLeft, hudColor)
	for i, line := range extraHUD {
		canvas.DrawText(line, hudX, hudY+float64(i+1)*hudLineHeight, hudTextSize, render.AlignLeft, hudColor)
	}
}

// StatusLine 返回状态行文字
func StatusLine(sim *game.SimulationState) string {
	return fmt.Sprintf("State: %s    Step: %d", sim.State, sim.DisplayStep())
}
