package scenes

import (
	"log"

	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/render"
	"github.com/gonewx/chainreact/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyHint 显示在 HUD 最后一行的操作提示
const KeyHint = "Space/Click: start    R: reset    F11: fullscreen"

// ChainScene 连锁反应演示场景
//
// 每帧依次执行：读取命令 → 调度系统推进一拍 → 绘制。
type ChainScene struct {
	sim     *game.SimulationState
	records *game.RecordManager

	input     InputSource
	sequence  *systems.SequenceSystem
	renderSys *systems.RenderSystem

	// canvas 在首次 Draw 时创建
	canvas *render.EbitenCanvas
}

// NewChainScene 创建演示场景
//
// 参数：
//   - sim: 模拟状态
//   - clock: 动画时钟
//   - chime: 铃声（可为 nil）
//   - records: 播放记录（可为 nil）
//   - input: 命令来源，nil 时使用 PlayerInput
func NewChainScene(sim *game.SimulationState, clock game.Clock, chime game.Chime, records *game.RecordManager, input InputSource) *ChainScene {
	if input == nil {
		input = PlayerInput
	}

	particles := systems.NewParticleSystem()
	sequence := systems.NewSequenceSystem(clock, particles)
	sequence.BindFeedback(chime, records)

	log.Printf("[ChainScene] Created with %d steps", len(sim.Steps))

	return &ChainScene{
		sim:       sim,
		records:   records,
		input:     input,
		sequence:  sequence,
		renderSys: systems.NewRenderSystem(particles),
	}
}

// Update 处理命令并推进一拍
func (s *ChainScene) Update(deltaTime float64) {
	s.sequence.Handle(s.sim, s.input())
	s.sequence.Update(s.sim)
}

// Draw 绘制当前帧
func (s *ChainScene) Draw(screen *ebiten.Image) {
	if s.canvas == nil {
		s.canvas = render.NewEbitenCanvas()
	}
	s.canvas.SetTarget(screen)
	s.renderSys.Draw(s.canvas, s.sim, s.HUDLines()...)
}

// HUDLines 状态行下方的附加文字
func (s *ChainScene) HUDLines() []string {
	if s.records == nil {
		return []string{KeyHint}
	}
	return []string{s.records.Summary(), KeyHint}
}

// Simulation 返回场景驱动的模拟状态
func (s *ChainScene) Simulation() *game.SimulationState {
	return s.sim
}

// SaveOnExit 窗口关闭时保存播放记录
func (s *ChainScene) SaveOnExit() bool {
	if s.records == nil {
		return true
	}
	if err := s.records.Save(); err != nil {
		log.Printf("[ChainScene] Failed to save records: %v", err)
		return false
	}
	return true
}
