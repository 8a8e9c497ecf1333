package components

import (
	"math"
	"time"
)

// StepKind 步骤类型
//
// 步骤是封闭的变体集合：每种类型对应 Step 中唯一一个非 nil 的状态记录。
type StepKind int

const (
	StepKindUnknown StepKind = iota
	StepKindRollingBall
	StepKindDominoTrain
	StepKindLeverAndCart
	StepKindBookDrop
	StepKindBell
)

// String 返回步骤类型名称（用于日志）
func (k StepKind) String() string {
	switch k {
	case StepKindRollingBall:
		return "RollingBall"
	case StepKindDominoTrain:
		return "DominoTrain"
	case StepKindLeverAndCart:
		return "LeverAndCart"
	case StepKindBookDrop:
		return "BookDrop"
	case StepKindBell:
		return "Bell"
	default:
		return "Unknown"
	}
}

// NeverStart 尚未轮到的步骤使用的 StartDelay 哨兵值
const NeverStart = time.Duration(math.MaxInt64)

// Step 连锁反应中的一个步骤
//
// StartDelay 是该步骤最早可以开始动作的时间点（相对动画时钟）。
// Done 一旦置为 true，在同一轮播放中不会再被清除，只有完整重置才会创建新的 Step。
type Step struct {
	Kind StepKind

	// 锚点坐标（各变体对其含义自行解释）
	X float64
	Y float64

	StartDelay time.Duration
	Started    bool
	Done       bool

	// ActivatedAt 激活时的时钟读数，触发延迟从此刻起算
	ActivatedAt time.Duration

	// 变体状态，按 Kind 只有一个非 nil
	Ball   *RollingBallState
	Domino *DominoTrainState
	Lever  *LeverAndCartState
	Book   *BookDropState
	Bell   *BellState
}

// RollingBallState 滚下斜坡的小球
type RollingBallState struct {
	BallX    float64
	Radius   float64
	Velocity float64

	// Speed 激活时赋予的速度（像素/帧），无摩擦
	Speed float64
	// FinishX 小球越过此 X 坐标即完成
	FinishX float64
}

// Domino 单块多米诺骨牌
type Domino struct {
	X       float64
	Y       float64
	Angle   float64 // 倾斜角度（弧度）
	Falling bool
}

// DominoTrainState 多米诺骨牌链
type DominoTrainState struct {
	Dominoes []Domino

	// TiltStep 每帧基础倾斜增量
	TiltStep float64
	// TiltBonus 按序号递增的额外倾斜（越靠后倒得越快）
	TiltBonus float64
	// FallAngle 超过此角度视为倒下，并推倒下一块
	FallAngle float64
}

// LeverAndCartState 杠杆与小车
type LeverAndCartState struct {
	LeverAngle   float64
	CartX        float64
	CartVelocity float64
	Triggered    bool
	TriggerDelay time.Duration
	Speed        float64
	Damping      float64 // 每帧速度乘数
	FinishCartX  float64
}

// BookDropState 下落的书本
type BookDropState struct {
	BookY        float64
	Released     bool
	TriggerDelay time.Duration
	Speed        float64
	FloorY       float64
}

// BellState 终点铃铛
type BellState struct {
	Rung bool
}
