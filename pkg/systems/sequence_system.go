package systems

import (
	"log"
	"time"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/game"
)

// Command 用户输入命令
type Command int

const (
	CommandNone Command = iota
	// CommandStart 开始/重播（空格键）
	CommandStart
	// CommandReset 完整重置（R 键）
	CommandReset
)

// SequenceSystem 步骤调度状态机
//
// 状态转换：
//   - idle/finished --Start--> running（finished 时复用现有步骤对象）
//   - running/finished/idle --Reset--> idle（重建全部步骤）
//   - running --最后一步完成--> finished（触发彩纸爆发）
//
// 每帧只调用一次 Update：先推进当前步骤，再检查是否完成并移动游标，
// 物理推进与游标前进在同一节拍内完成，不存在独立的轮询定时器。
type SequenceSystem struct {
	clock     game.Clock
	particles *ParticleSystem

	// OnStepDone 步骤完成、游标前进后回调（index 为完成的步骤序号）
	OnStepDone func(index int, step *components.Step)

	// OnFinish 进入 finished 时回调
	OnFinish func(runDuration time.Duration)
}

// NewSequenceSystem 创建调度系统
func NewSequenceSystem(clock game.Clock, particles *ParticleSystem) *SequenceSystem {
	return &SequenceSystem{
		clock:     clock,
		particles: particles,
	}
}

// Handle 执行用户命令
func (s *SequenceSystem) Handle(sim *game.SimulationState, cmd Command) {
	switch cmd {
	case CommandStart:
		s.Start(sim)
	case CommandReset:
		s.Reset(sim)
	}
}

// Start 开始播放
//
// 游标归零，第一步的 StartDelay 设为当前时刻，其余步骤设为 NeverStart，
// 待前一步完成时再逐个放行。播放中调用会被忽略。
//
// 从 finished 重播时不会重建步骤：已完成的步骤保留 Done，会在各自的回合立即通过。
//
// 返回：
//   - bool: 是否进入了 running
func (s *SequenceSystem) Start(sim *game.SimulationState) bool {
	switch sim.State {
	case game.StateRunning:
		log.Printf("[Sequence] Start ignored: already running (step %d)", sim.Cursor)
		return false
	case game.StateFinished:
		if stale := countDone(sim.Steps); stale > 0 {
			log.Printf("[Sequence] Warning: replay without reset reuses %d completed steps; they will pass through without animating", stale)
		}
	}

	now := s.clock.Now()
	sim.State = game.StateRunning
	sim.Cursor = 0
	sim.RunStartedAt = now

	for i, step := range sim.Steps {
		if i == 0 {
			step.StartDelay = now
		} else {
			step.StartDelay = components.NeverStart
		}
	}

	log.Printf("[Sequence] Started: %d steps", len(sim.Steps))
	return true
}

// Reset 重建全部步骤并回到 idle（任何状态下都可调用，包括播放中）
func (s *SequenceSystem) Reset(sim *game.SimulationState) {
	prev := sim.State
	sim.Reinitialize()
	log.Printf("[Sequence] Reset from %s", prev)
}

// Update 推进一帧
//
// running: 更新游标处的步骤；完成后放行下一步并前进一格，越过末尾即进入 finished。
// finished: 推进彩纸。
func (s *SequenceSystem) Update(sim *game.SimulationState) {
	switch sim.State {
	case game.StateRunning:
		s.advance(sim, s.clock.Now())
	case game.StateFinished:
		s.particles.Update(sim)
	}
}

func (s *SequenceSystem) advance(sim *game.SimulationState, now time.Duration) {
	step := sim.CurrentStep()
	if step == nil {
		s.finish(sim, now)
		return
	}

	UpdateStep(step, now)
	if !step.Done {
		return
	}

	index := sim.Cursor
	sim.Cursor++
	log.Printf("[Sequence] Step %d (%s) done at %v", index, step.Kind, now-sim.RunStartedAt)
	if s.OnStepDone != nil {
		s.OnStepDone(index, step)
	}

	next := sim.CurrentStep()
	if next == nil {
		s.finish(sim, now)
		return
	}
	next.StartDelay = now + sim.Config.HandoffDelay()
}

func (s *SequenceSystem) finish(sim *game.SimulationState, now time.Duration) {
	sim.State = game.StateFinished
	sim.LastRunDuration = now - sim.RunStartedAt
	s.particles.Burst(sim)

	log.Printf("[Sequence] Finished in %v", sim.LastRunDuration)
	if s.OnFinish != nil {
		s.OnFinish(sim.LastRunDuration)
	}
}

func countDone(steps []*components.Step) int {
	n := 0
	for _, step := range steps {
		if step.Done {
			n++
		}
	}
	return n
}
