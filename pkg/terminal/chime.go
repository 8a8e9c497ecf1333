package terminal

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	// 铃声指数衰减速率（每秒）
	chimeDecay = 6.0
)

// BeepChime 通过系统扬声器播放铃声
type BeepChime struct {
	cfg config.ChimeConfig
}

// NewBeepChime 初始化扬声器
// 失败时调用方应退回 game.NopChime
func NewBeepChime(cfg config.ChimeConfig) (*BeepChime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &BeepChime{cfg: cfg}, nil
}

// Ring 播放一次铃声
func (c *BeepChime) Ring() {
	if streamer := c.streamer(); streamer != nil {
		speaker.Play(streamer)
	}
}

// streamer 构造本次铃声，失败时记录日志并返回 nil
func (c *BeepChime) streamer() beep.Streamer {
	streamer, err := ChimeStreamer(c.cfg, sampleRate)
	if err != nil {
		log.Printf("[Terminal] Failed to build chime: %v", err)
		return nil
	}
	return streamer
}

// Close 关闭扬声器
func (c *BeepChime) Close() {
	speaker.Close()
}

// ChimeStreamer 构造一次铃声：正弦波经指数衰减包络和音量增益后截取固定时长
func ChimeStreamer(cfg config.ChimeConfig, sr beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create sine tone: %w", err)
	}

	n := sr.N(time.Duration(cfg.DurationMs) * time.Millisecond)
	return beep.Take(n, &effects.Gain{
		Streamer: decay(tone, sr),
		Gain:     math.Max(0, math.Min(1, cfg.Volume)) - 1,
	}), nil
}

// decay 对输入施加 exp(-chimeDecay*t) 包络
func decay(s beep.Streamer, sr beep.SampleRate) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			env := math.Exp(-chimeDecay * float64(pos) / float64(sr))
			samples[i][0] *= env
			samples[i][1] *= env
			pos++
		}
		return n, ok
	})
}
