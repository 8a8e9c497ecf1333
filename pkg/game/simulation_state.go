package game

import (
	"math/rand/v2"
	"time"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/entities"
)

// SequenceState 播放生命周期状态
type SequenceState int

const (
	// StateIdle 待机：等待开始命令
	StateIdle SequenceState = iota
	// StateRunning 播放中：当前游标处的步骤在更新
	StateRunning
	// StateFinished 全部步骤完成，彩纸下落中
	StateFinished
)

// String 返回状态名（用于 HUD 和日志）
func (s SequenceState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SimulationState 一次连锁反应演示的全部可变状态
//
// 所有系统都显式接收此对象，不存在包级全局状态。
type SimulationState struct {
	Config *config.ChainConfig

	// Steps 按播放顺序排列
	Steps []*components.Step
	// Cursor 当前步骤序号，完成后等于 len(Steps)
	Cursor int
	State  SequenceState

	// Particles 彩纸列表，只在完整重置时清空
	Particles []components.ConfettiParticle

	// Rand 彩纸随机源（可指定种子以便复现）
	Rand *rand.Rand

	// RunStartedAt 最近一次开始命令的时钟读数
	RunStartedAt time.Duration
	// LastRunDuration 最近一次完整播放的耗时
	LastRunDuration time.Duration
}

// NewSimulationState 创建处于 idle 状态的模拟
//
// 参数：
//   - cfg: 布局配置（调用方负责验证）
//   - seed: 随机种子
func NewSimulationState(cfg *config.ChainConfig, seed uint64) *SimulationState {
	s := &SimulationState{
		Config: cfg,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.Reinitialize()
	return s
}

// Reinitialize 重建全部步骤并回到 idle
// 清空彩纸、游标归零，无论当前处于什么状态
func (s *SimulationState) Reinitialize() {
	s.Steps = entities.NewSteps(s.Config.Steps)
	s.Cursor = 0
	s.State = StateIdle
	s.Particles = nil
	s.RunStartedAt = 0
}

// StepAt 返回指定序号的步骤，越界时返回 nil
func (s *SimulationState) StepAt(index int) *components.Step {
	if index < 0 || index >= len(s.Steps) {
		return nil
	}
	return s.Steps[index]
}

// CurrentStep 返回游标处的步骤，越界时返回 nil
func (s *SimulationState) CurrentStep() *components.Step {
	return s.StepAt(s.Cursor)
}

// DisplayStep 返回 HUD 显示的步骤序号（不超过步骤总数）
func (s *SimulationState) DisplayStep() int {
	return min(s.Cursor, len(s.Steps))
}
