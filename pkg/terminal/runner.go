// Package terminal 在终端中运行连锁反应演示
//
// 画面通过 render.CellCanvas 栅格化后输出到 tcell 屏幕，每个字符格代表
// 画布上的一块区域。模拟状态与窗口模式完全相同。
package terminal

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/render"
	"github.com/gonewx/chainreact/pkg/systems"
)

// KeyHint 终端模式的操作提示
const KeyHint = "Space: start    R: reset    Q: quit"

// eventBuffer 输入事件通道容量
const eventBuffer = 100

// Runner 终端主循环
type Runner struct {
	screen  tcell.Screen
	sim     *game.SimulationState
	records *game.RecordManager

	sequence  *systems.SequenceSystem
	renderSys *systems.RenderSystem
	canvas    *render.CellCanvas

	tick time.Duration
}

// NewRunner 创建终端主循环
//
// screen 必须已经 Init；chime 与 records 可为 nil。
func NewRunner(screen tcell.Screen, sim *game.SimulationState, clock game.Clock, chime game.Chime, records *game.RecordManager) *Runner {
	particles := systems.NewParticleSystem()
	sequence := systems.NewSequenceSystem(clock, particles)
	sequence.BindFeedback(chime, records)

	cols, rows := screen.Size()
	canvas := render.NewCellCanvas(cols, rows,
		float64(sim.Config.Canvas.Width), float64(sim.Config.Canvas.Height))

	return &Runner{
		screen:    screen,
		sim:       sim,
		records:   records,
		sequence:  sequence,
		renderSys: systems.NewRenderSystem(particles),
		canvas:    canvas,
		tick:      sim.Config.TickInterval(),
	}
}

// KeyCommand 把按键映射为命令
//
// 返回：
//   - systems.Command: 对应的命令
//   - bool: 是否请求退出（Esc、Ctrl-C、q）
func KeyCommand(ev *tcell.EventKey) (systems.Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return systems.CommandNone, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return systems.CommandStart, false
		case 'r', 'R':
			return systems.CommandReset, false
		case 'q', 'Q':
			return systems.CommandNone, true
		}
	}
	return systems.CommandNone, false
}

// HandleEvent 处理一个终端事件，返回是否应退出
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, quit := KeyCommand(ev)
		if quit {
			return true
		}
		r.sequence.Handle(r.sim, cmd)

	case *tcell.EventResize:
		cols, rows := r.screen.Size()
		r.canvas.Resize(cols, rows)
		r.screen.Sync()
		log.Printf("[Terminal] Resized to %dx%d", cols, rows)
	}
	return false
}

// Step 推进一拍并重绘
func (r *Runner) Step() {
	r.sequence.Update(r.sim)
	r.draw()
}

func (r *Runner) draw() {
	lines := []string{KeyHint}
	if r.records != nil {
		lines = []string{r.records.Summary(), KeyHint}
	}
	r.renderSys.Draw(r.canvas, r.sim, lines...)
	r.canvas.Flush(r.screen)
	r.screen.Show()
}

// Run 进入主循环，直到收到退出按键或 ctx 被取消
//
// 事件读取在独立的 goroutine 中进行；模拟状态只在主循环中修改。
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				// 屏幕已 Fini
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.draw()
	log.Printf("[Terminal] Running at %v per tick", r.tick)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.Step()
		}
	}
}
