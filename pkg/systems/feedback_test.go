package systems

import (
	"testing"

	"github.com/gonewx/chainreact/pkg/game"
)

type countingChime struct{ rings int }

func (c *countingChime) Ring() { c.rings++ }

// TestBindFeedback 测试铃铛完成时响铃一次、播放完成时写入记录
func TestBindFeedback(t *testing.T) {
	f := newChainFixture(nil)
	chime := &countingChime{}
	records := game.NewRecordManager(nil)
	f.seq.BindFeedback(chime, records)

	f.seq.Start(f.sim)
	if !f.runUntil(maxRunTicks, func() bool { return f.sim.State == game.StateFinished }) {
		t.Fatal("run never finished")
	}

	if chime.rings != 1 {
		t.Errorf("chime rings: got %d, want 1", chime.rings)
	}
	rec := records.GetRecord()
	if rec.CompletedRuns != 1 {
		t.Errorf("CompletedRuns: got %d, want 1", rec.CompletedRuns)
	}
	if rec.BestRunMs != f.sim.LastRunDuration.Milliseconds() {
		t.Errorf("BestRunMs: got %d, want %d", rec.BestRunMs, f.sim.LastRunDuration.Milliseconds())
	}
}

// TestBindFeedback_NilTargets 测试不提供铃声和记录时正常播放
func TestBindFeedback_NilTargets(t *testing.T) {
	f := newChainFixture(nil)
	f.seq.BindFeedback(nil, nil)

	f.seq.Start(f.sim)
	if !f.runUntil(maxRunTicks, func() bool { return f.sim.State == game.StateFinished }) {
		t.Fatal("run never finished")
	}
}
