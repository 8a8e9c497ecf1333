package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gonewx/chainreact/pkg/config"
)

// TestSynthesizeBellPCM 测试铃声 PCM 的长度、声道和振幅
func TestSynthesizeBellPCM(t *testing.T) {
	cfg := config.ChimeConfig{Frequency: 1000, DurationMs: 100, Volume: 0.5}
	pcm := SynthesizeBellPCM(cfg, SampleRate)

	wantSamples := SampleRate / 10
	if len(pcm) != wantSamples*4 {
		t.Fatalf("PCM length: got %d bytes, want %d", len(pcm), wantSamples*4)
	}

	limit := int(0.5*math.MaxInt16) + 1
	for i := 0; i < wantSamples; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		if left != right {
			t.Fatalf("sample %d: channels differ (%d vs %d)", i, left, right)
		}
		if int(left) > limit || int(left) < -limit {
			t.Fatalf("sample %d: amplitude %d exceeds volume limit %d", i, left, limit)
		}
	}

	// 首个采样点相位为 0
	if first := int16(binary.LittleEndian.Uint16(pcm[0:])); first != 0 {
		t.Errorf("first sample: got %d, want 0", first)
	}
}

// TestSynthesizeBellPCM_Empty 测试零时长不产生数据
func TestSynthesizeBellPCM_Empty(t *testing.T) {
	if pcm := SynthesizeBellPCM(config.ChimeConfig{Frequency: 440}, SampleRate); pcm != nil {
		t.Errorf("expected nil PCM for zero duration, got %d bytes", len(pcm))
	}
}

// TestNopChime 测试静音实现满足接口
func TestNopChime(t *testing.T) {
	var c Chime = NopChime{}
	c.Ring()
}

// TestAudioManagerSetMuted 测试静音开关，静音时 Ring 不访问播放器
func TestAudioManagerSetMuted(t *testing.T) {
	am := &AudioManager{}

	am.SetMuted(true)
	if !am.muted {
		t.Fatal("SetMuted(true) should mute")
	}
	am.Ring()

	am.SetMuted(false)
	if am.muted {
		t.Error("SetMuted(false) should unmute")
	}
	// 没有播放器时同样是空操作
	am.Ring()
}
