package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 是窗口中的一个画面，目前只有连锁反应场景
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 是场景可选实现的接口
//
// 场景被切走或窗口关闭时，SceneManager 会调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 保存场景状态，返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
