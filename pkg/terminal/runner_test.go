package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/systems"
)

func newTestRunner(t *testing.T) (*Runner, tcell.SimulationScreen, *game.ManualClock) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(86, 25)

	sim := game.NewSimulationState(config.DefaultChainConfig(), 1)
	clock := game.NewManualClock()
	return NewRunner(screen, sim, clock, nil, game.NewRecordManager(nil)), screen, clock
}

// screenRow 读取模拟屏幕某一行的文字
func screenRow(screen tcell.SimulationScreen, row int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for col := 0; col < width; col++ {
		runes := cells[row*width+col].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

// TestKeyCommand 测试按键映射
func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		wantCmd  systems.Command
		wantQuit bool
	}{
		{"空格开始", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), systems.CommandStart, false},
		{"r 重置", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), systems.CommandReset, false},
		{"R 重置", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), systems.CommandReset, false},
		{"q 退出", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), systems.CommandNone, true},
		{"Esc 退出", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), systems.CommandNone, true},
		{"Ctrl-C 退出", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), systems.CommandNone, true},
		{"其他按键忽略", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), systems.CommandNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, quit := KeyCommand(tt.ev)
			if cmd != tt.wantCmd || quit != tt.wantQuit {
				t.Errorf("KeyCommand() = (%v, %v), want (%v, %v)", cmd, quit, tt.wantCmd, tt.wantQuit)
			}
		})
	}
}

// TestRunner_StartAndDraw 测试空格开始后 HUD 显示 running
func TestRunner_StartAndDraw(t *testing.T) {
	r, screen, clock := newTestRunner(t)

	if quit := r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)); quit {
		t.Fatal("space should not quit")
	}
	clock.Advance(time.Second / 60)
	r.Step()

	if r.sim.State != game.StateRunning {
		t.Fatalf("State: got %v, want running", r.sim.State)
	}
	if row := screenRow(screen, 0); !strings.Contains(row, "State: running") {
		t.Errorf("HUD row: got %q", row)
	}
}

// TestRunner_FullRun 测试终端模式播放到结束
func TestRunner_FullRun(t *testing.T) {
	r, _, clock := newTestRunner(t)
	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))

	for i := 0; i < 3000 && r.sim.State != game.StateFinished; i++ {
		clock.Advance(time.Second / 60)
		r.Step()
	}

	if r.sim.State != game.StateFinished {
		t.Fatalf("State: got %v, want finished", r.sim.State)
	}
	if got := r.records.GetRecord().CompletedRuns; got != 1 {
		t.Errorf("CompletedRuns: got %d, want 1", got)
	}
}

// TestRunner_QuitAndResize 测试退出按键与窗口尺寸变化
func TestRunner_QuitAndResize(t *testing.T) {
	r, screen, _ := newTestRunner(t)

	screen.SetSize(40, 12)
	if quit := r.HandleEvent(tcell.NewEventResize(40, 12)); quit {
		t.Error("resize should not quit")
	}
	if cols, rows := r.canvas.GridSize(); cols != 40 || rows != 12 {
		t.Errorf("canvas grid: got %dx%d, want 40x12", cols, rows)
	}

	if quit := r.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !quit {
		t.Error("Esc should quit")
	}
}
