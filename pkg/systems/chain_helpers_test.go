package systems

import (
	"image/color"
	"time"

	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/render"
)

// frame 测试中每帧推进的时钟步长（60 TPS）
const frame = time.Second / 60

// drawOp 记录一次 Canvas 调用
type drawOp struct {
	kind  string
	x, y  float64
	w, h  float64
	angle float64
	text  string
	clr   color.Color
}

// recordingCanvas 记录所有绘制调用的 Canvas
type recordingCanvas struct {
	width, height float64
	ops           []drawOp
}

func newRecordingCanvas(cfg *config.ChainConfig) *recordingCanvas {
	return &recordingCanvas{width: float64(cfg.Canvas.Width), height: float64(cfg.Canvas.Height)}
}

func (c *recordingCanvas) Size() (float64, float64) { return c.width, c.height }

func (c *recordingCanvas) Fill(clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "fill", clr: clr})
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "rect", x: x, y: y, w: w, h: h, clr: clr})
}

func (c *recordingCanvas) FillRotatedRect(cx, cy, w, h, angle float64, clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "rotrect", x: cx, y: cy, w: w, h: h, angle: angle, clr: clr})
}

func (c *recordingCanvas) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "ellipse", x: cx, y: cy, w: rx, h: ry, clr: clr})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "line", x: x0, y: y0, w: x1, h: y1, clr: clr})
}

func (c *recordingCanvas) DrawText(s string, x, y, size float64, align render.TextAlign, clr color.Color) {
	c.ops = append(c.ops, drawOp{kind: "text", x: x, y: y, text: s, clr: clr})
}

func (c *recordingCanvas) count(kind string, clr color.Color) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind && (clr == nil || op.clr == clr) {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) texts() []string {
	var out []string
	for _, op := range c.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

// chainFixture 一套完整的测试装配
type chainFixture struct {
	cfg       *config.ChainConfig
	sim       *game.SimulationState
	clock     *game.ManualClock
	particles *ParticleSystem
	seq       *SequenceSystem
}

func newChainFixture(cfg *config.ChainConfig) *chainFixture {
	if cfg == nil {
		cfg = config.DefaultChainConfig()
	}
	clock := game.NewManualClock()
	particles := NewParticleSystem()
	return &chainFixture{
		cfg:       cfg,
		sim:       game.NewSimulationState(cfg, 42),
		clock:     clock,
		particles: particles,
		seq:       NewSequenceSystem(clock, particles),
	}
}

// tick 推进时钟一帧并调用 Update
func (f *chainFixture) tick() {
	f.clock.Advance(frame)
	f.seq.Update(f.sim)
}

// runUntil 逐帧推进直到 cond 成立，返回是否在 maxTicks 内成立
func (f *chainFixture) runUntil(maxTicks int, cond func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return true
		}
		f.tick()
	}
	return cond()
}
