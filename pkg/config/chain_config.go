package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultChainConfigPath 内置布局配置在嵌入文件系统中的路径
const DefaultChainConfigPath = "data/chain.yaml"

// 步骤类型字符串（与 YAML 中的 kind 字段一致）
const (
	StepKindRollingBall  = "rollingBall"
	StepKindDominoTrain  = "dominoTrain"
	StepKindLeverAndCart = "leverAndCart"
	StepKindBookDrop     = "bookDrop"
	StepKindBell         = "bell"
)

// 步骤内部几何（相对步骤锚点），工厂与验证共用
const (
	// LeverCartOffsetX 小车初始位置相对杠杆支点的水平偏移
	LeverCartOffsetX = 20.0
	// BookRestOffsetY 书本初始位置在锚点上方的高度
	BookRestOffsetY = 40.0
)

// ChainConfig 连锁反应整体配置
//
// 配置文件位置: data/chain.yaml
type ChainConfig struct {
	// Canvas 画布尺寸
	Canvas CanvasConfig `yaml:"canvas"`

	// Timing 节拍与步骤交接配置
	Timing TimingConfig `yaml:"timing"`

	// Steps 按播放顺序排列的步骤列表
	Steps []StepConfig `yaml:"steps"`

	// Burst 完成时的彩纸爆发配置
	Burst BurstConfig `yaml:"burst"`

	// Chime 铃铛音效配置
	Chime ChimeConfig `yaml:"chime"`
}

// CanvasConfig 固定尺寸的绘制表面
type CanvasConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundHeight int `yaml:"groundHeight"`
}

// TimingConfig 节拍配置
type TimingConfig struct {
	// TPS 每秒逻辑帧数（与 ebiten 默认 60 一致）
	TPS int `yaml:"tps"`

	// HandoffDelayMs 前一步完成后，下一步开始前的额外等待（毫秒）
	HandoffDelayMs int `yaml:"handoffDelayMs"`
}

// StepConfig 单个步骤的配置
//
// 字段按 Kind 选用，未用到的字段保持零值即可。
type StepConfig struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`

	// rollingBall / leverAndCart / bookDrop 共用
	Speed float64 `yaml:"speed,omitempty"`
	// Travel 相对起点的完成距离（rollingBall / leverAndCart）
	Travel float64 `yaml:"travel,omitempty"`

	// rollingBall
	Radius float64 `yaml:"radius,omitempty"`

	// dominoTrain
	Count     int     `yaml:"count,omitempty"`
	Spacing   float64 `yaml:"spacing,omitempty"`
	TiltStep  float64 `yaml:"tiltStep,omitempty"`
	TiltBonus float64 `yaml:"tiltBonus,omitempty"`
	FallAngle float64 `yaml:"fallAngle,omitempty"`

	// leverAndCart / bookDrop
	TriggerDelayMs int `yaml:"triggerDelayMs,omitempty"`

	// leverAndCart
	Damping float64 `yaml:"damping,omitempty"`

	// bookDrop: 书本下落到此绝对 Y 坐标即完成
	FloorY float64 `yaml:"floorY,omitempty"`
}

// BurstConfig 彩纸爆发配置
type BurstConfig struct {
	Count     int     `yaml:"count"`
	MinXRatio float64 `yaml:"minXRatio"`
	MaxXRatio float64 `yaml:"maxXRatio"`
	MinY      float64 `yaml:"minY"`
	MaxY      float64 `yaml:"maxY"`
	MinSpeed  float64 `yaml:"minSpeed"`
	MaxSpeed  float64 `yaml:"maxSpeed"`
	MinSize   float64 `yaml:"minSize"`
	MaxSize   float64 `yaml:"maxSize"`
	// Spin 每帧固定的旋转增量（弧度）
	Spin float64 `yaml:"spin"`
}

// ChimeConfig 铃铛音效配置
type ChimeConfig struct {
	Frequency  float64 `yaml:"frequency"`
	DurationMs int     `yaml:"durationMs"`
	Volume     float64 `yaml:"volume"`
}

// DefaultChainConfig 返回内置的五步布局（球 → 多米诺 → 杠杆小车 → 书本 → 铃铛）
func DefaultChainConfig() *ChainConfig {
	const width, height = 860, 500
	return &ChainConfig{
		Canvas: CanvasConfig{Width: width, Height: height, GroundHeight: 40},
		Timing: TimingConfig{TPS: 60, HandoffDelayMs: 0},
		Steps: []StepConfig{
			{Kind: StepKindRollingBall, X: 80, Y: 120, Radius: 18, Speed: 3.2, Travel: 110},
			{Kind: StepKindDominoTrain, X: 220, Y: height - 60, Count: 8, Spacing: 18,
				TiltStep: 0.06, TiltBonus: 0.002, FallAngle: math.Pi / 1.6},
			{Kind: StepKindLeverAndCart, X: 420, Y: height - 80, TriggerDelayMs: 600,
				Speed: 3.8, Damping: 0.995, Travel: 120},
			{Kind: StepKindBookDrop, X: 600, Y: height - 120, TriggerDelayMs: 300,
				Speed: 6, FloorY: height - 80},
			{Kind: StepKindBell, X: 760, Y: height - 120},
		},
		Burst: BurstConfig{
			Count:     80,
			MinXRatio: 0.2, MaxXRatio: 0.9,
			MinY: -40, MaxY: -10,
			MinSpeed: 1, MaxSpeed: 4,
			MinSize: 4, MaxSize: 9,
			Spin: 0.08,
		},
		Chime: ChimeConfig{Frequency: 1320, DurationMs: 600, Volume: 0.4},
	}
}

// LoadChainConfig 从文件加载布局配置
//
// 参数:
//   - path: 配置文件路径（如 "data/chain.yaml"）
//
// 返回:
//   - *ChainConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadChainConfig(path string) (*ChainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain config: %w", err)
	}
	return ParseChainConfig(data)
}

// ParseChainConfig 解析 YAML 格式的布局配置
func ParseChainConfig(data []byte) (*ChainConfig, error) {
	var cfg ChainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse chain config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chain config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 画布尺寸与 TPS 为正
//   - 每个步骤的 kind 已知，且其运动一定能越过完成阈值
//   - 彩纸随机范围的 min 不大于 max
func (c *ChainConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive: %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Timing.TPS <= 0 {
		return fmt.Errorf("timing.tps must be positive: %d", c.Timing.TPS)
	}
	if c.Timing.HandoffDelayMs < 0 {
		return fmt.Errorf("timing.handoffDelayMs cannot be negative: %d", c.Timing.HandoffDelayMs)
	}

	for i := range c.Steps {
		if err := c.Steps[i].validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	b := c.Burst
	if b.Count < 0 {
		return fmt.Errorf("burst.count cannot be negative: %d", b.Count)
	}
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"xRatio", b.MinXRatio, b.MaxXRatio},
		{"y", b.MinY, b.MaxY},
		{"speed", b.MinSpeed, b.MaxSpeed},
		{"size", b.MinSize, b.MaxSize},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("burst %s range invalid: min(%.2f) > max(%.2f)", r.name, r.min, r.max)
		}
	}
	if b.MinSpeed < 0 {
		return fmt.Errorf("burst speed must not be negative: %.2f", b.MinSpeed)
	}

	return nil
}

// validate 检查单个步骤：参数为零或运动无法到达终点的步骤会让整轮播放永远停在 running
func (s *StepConfig) validate() error {
	switch s.Kind {
	case StepKindBell:
		return nil

	case StepKindRollingBall:
		if s.Speed <= 0 {
			return fmt.Errorf("rollingBall speed must be positive: %.2f", s.Speed)
		}
		if s.Travel <= 0 {
			return fmt.Errorf("rollingBall travel must be positive: %.2f", s.Travel)
		}

	case StepKindDominoTrain:
		if s.Count <= 0 {
			return fmt.Errorf("domino count must be positive: %d", s.Count)
		}
		if s.TiltStep <= 0 {
			return fmt.Errorf("domino tiltStep must be positive: %.3f", s.TiltStep)
		}
		if s.TiltBonus < 0 {
			return fmt.Errorf("domino tiltBonus cannot be negative: %.3f", s.TiltBonus)
		}

	case StepKindLeverAndCart:
		if s.Speed <= 0 {
			return fmt.Errorf("leverAndCart speed must be positive: %.2f", s.Speed)
		}
		if s.Travel <= 0 {
			return fmt.Errorf("leverAndCart travel must be positive: %.2f", s.Travel)
		}
		if s.Damping <= 0 || s.Damping > 1 {
			return fmt.Errorf("damping must be in (0, 1]: %.3f", s.Damping)
		}
		// 阻尼 d<1 时小车总行程收敛于 speed/(1-d)
		if need := s.Travel - LeverCartOffsetX; s.Damping < 1 && s.Speed/(1-s.Damping) <= need {
			return fmt.Errorf("leverAndCart cart stops short: speed %.2f with damping %.3f covers %.1fpx, needs more than %.1fpx",
				s.Speed, s.Damping, s.Speed/(1-s.Damping), need)
		}

	case StepKindBookDrop:
		if s.Speed <= 0 {
			return fmt.Errorf("bookDrop speed must be positive: %.2f", s.Speed)
		}
		if start := s.Y - BookRestOffsetY; s.FloorY <= start {
			return fmt.Errorf("bookDrop floorY (%.0f) must be below the book's start (%.0f)", s.FloorY, start)
		}

	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}
	return nil
}

// TickInterval 返回一帧逻辑更新的间隔
func (c *ChainConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Timing.TPS)
}

// HandoffDelay 返回步骤交接的额外等待
func (c *ChainConfig) HandoffDelay() time.Duration {
	return time.Duration(c.Timing.HandoffDelayMs) * time.Millisecond
}
