package entities

import (
	"log"
	"time"

	"github.com/gonewx/chainreact/pkg/components"
	"github.com/gonewx/chainreact/pkg/config"
)

const (
	// 杠杆的初始倾角
	leverRestAngle = -0.2
	// 多米诺底部到锚点的距离
	dominoOffsetY = 20.0
)

// NewStep 根据配置创建一个处于初始状态的步骤
//
// 参数:
//   - cfg: 步骤配置（Kind 决定创建哪种变体）
//
// 返回:
//   - *components.Step: 新步骤，StartDelay 为 0，尚未激活
//
// 未知类型返回 Kind 为 StepKindUnknown 的空步骤，所有系统对其均为空操作。
func NewStep(cfg config.StepConfig) *components.Step {
	step := &components.Step{X: cfg.X, Y: cfg.Y}

	switch cfg.Kind {
	case config.StepKindRollingBall:
		step.Kind = components.StepKindRollingBall
		step.Ball = &components.RollingBallState{
			BallX:   cfg.X,
			Radius:  cfg.Radius,
			Speed:   cfg.Speed,
			FinishX: cfg.X + cfg.Travel,
		}

	case config.StepKindDominoTrain:
		step.Kind = components.StepKindDominoTrain
		dominoes := make([]components.Domino, cfg.Count)
		for i := range dominoes {
			dominoes[i] = components.Domino{
				X: cfg.X + float64(i)*cfg.Spacing,
				Y: cfg.Y - dominoOffsetY,
			}
		}
		step.Domino = &components.DominoTrainState{
			Dominoes:  dominoes,
			TiltStep:  cfg.TiltStep,
			TiltBonus: cfg.TiltBonus,
			FallAngle: cfg.FallAngle,
		}

	case config.StepKindLeverAndCart:
		step.Kind = components.StepKindLeverAndCart
		step.Lever = &components.LeverAndCartState{
			LeverAngle:   leverRestAngle,
			CartX:        cfg.X + config.LeverCartOffsetX,
			TriggerDelay: time.Duration(cfg.TriggerDelayMs) * time.Millisecond,
			Speed:        cfg.Speed,
			Damping:      cfg.Damping,
			FinishCartX:  cfg.X + cfg.Travel,
		}

	case config.StepKindBookDrop:
		step.Kind = components.StepKindBookDrop
		step.Book = &components.BookDropState{
			BookY:        cfg.Y - config.BookRestOffsetY,
			TriggerDelay: time.Duration(cfg.TriggerDelayMs) * time.Millisecond,
			Speed:        cfg.Speed,
			FloorY:       cfg.FloorY,
		}

	case config.StepKindBell:
		step.Kind = components.StepKindBell
		step.Bell = &components.BellState{}

	default:
		log.Printf("[StepFactory] Warning: unknown step kind %q, step will be inert", cfg.Kind)
	}

	return step
}

// NewSteps 按配置顺序创建全部步骤（插入顺序即播放顺序）
func NewSteps(cfgs []config.StepConfig) []*components.Step {
	steps := make([]*components.Step, 0, len(cfgs))
	for _, cfg := range cfgs {
		steps = append(steps, NewStep(cfg))
	}
	return steps
}
