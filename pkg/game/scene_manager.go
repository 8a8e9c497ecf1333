package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 持有当前活动场景，每帧只驱动这一个场景
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建没有活动场景的管理器，需再调用 SwitchTo
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
//
// 被切走的场景若实现 Saveable，会先保存一次；切换到同一场景不做任何事。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if scene == sm.currentScene {
		return
	}
	if sm.currentScene != nil && !sm.SaveOnExit() {
		log.Printf("[SceneManager] Outgoing scene failed to save")
	}
	log.Printf("[SceneManager] Switched to %T", scene)
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 推进当前场景，没有场景时为空操作
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}
	sm.currentScene.Update(deltaTime)
}

// Draw 绘制当前场景，没有场景时为空操作
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene == nil {
		return
	}
	sm.currentScene.Draw(screen)
}

// SaveOnExit 在窗口关闭时让当前场景保存状态
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}
