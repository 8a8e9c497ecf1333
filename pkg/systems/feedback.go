package systems

import (
	"log"
	"time"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/game"
)

// BindFeedback 将播放事件连接到铃声与播放记录
//
// 铃铛步骤完成时响铃；进入 finished 时记录耗时。chime 与 records 都可以为 nil。
func (s *SequenceSystem) BindFeedback(chime game.Chime, records *game.RecordManager) {
	s.OnStepDone = func(index int, step *components.Step) {
		if step.Kind == components.StepKindBell && chime != nil {
			chime.Ring()
		}
	}
	s.OnFinish = func(d time.Duration) {
		if records == nil {
			return
		}
		if records.RecordRun(d) {
			log.Printf("[Sequence] New best run: %v", d)
		}
	}
}
