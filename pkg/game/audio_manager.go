package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/gonewx/chainreact/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 铃声泛音：主频之外叠加一个非整数倍泛音，衰减更快
const (
	bellOvertoneRatio = 2.76
	bellOvertoneGain  = 0.35
	bellDecayPerSec   = 6.0
)

// Chime 铃铛完成时的提示音
type Chime interface {
	Ring()
}

// NopChime 静音实现（--mute 或音频初始化失败时使用）
type NopChime struct{}

// Ring 不做任何事
func (NopChime) Ring() {}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存铃声 PCM
//   - 通过 ebiten 音频上下文播放铃声
type AudioManager struct {
	bellPlayer *audio.Player
	muted      bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（采样率必须为 SampleRate）
//   - cfg: 铃声配置
func NewAudioManager(ctx *audio.Context, cfg config.ChimeConfig) *AudioManager {
	pcm := SynthesizeBellPCM(cfg, SampleRate)
	return &AudioManager{
		bellPlayer: ctx.NewPlayerFromBytes(pcm),
	}
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
}

// Ring 从头播放铃声
func (am *AudioManager) Ring() {
	if am.muted || am.bellPlayer == nil {
		return
	}

	if err := am.bellPlayer.Rewind(); err != nil {
		log.Printf("[AudioManager] Failed to rewind bell: %v", err)
		return
	}
	am.bellPlayer.Play()
}

// SynthesizeBellPCM 合成铃声
//
// 输出格式与 ebiten 音频上下文一致：16 位有符号小端、双声道交错。
// 振幅按指数衰减，峰值不超过 cfg.Volume。
func SynthesizeBellPCM(cfg config.ChimeConfig, sampleRate int) []byte {
	n := sampleRate * cfg.DurationMs / 1000
	if n <= 0 {
		return nil
	}

	volume := math.Max(0, math.Min(1, cfg.Volume))
	// 两个分量的振幅之和归一化到 1
	norm := 1 / (1 + bellOvertoneGain)

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-bellDecayPerSec * t)
		v := math.Sin(2*math.Pi*cfg.Frequency*t) +
			bellOvertoneGain*math.Sin(2*math.Pi*cfg.Frequency*bellOvertoneRatio*t)*envelope
		sample := int16(v * norm * envelope * volume * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
