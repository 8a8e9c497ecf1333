package scenes

import (
	"github.com/gonewx/chainreact/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource 每帧读取一次用户命令
type InputSource func() systems.Command

// PlayerInput 读取本帧新发生的键盘、鼠标和触摸输入
//
//   - R：重置
//   - 空格、鼠标左键点击或触摸：开始
//
// 同一帧同时发生时重置优先
func PlayerInput() systems.Command {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return systems.CommandReset
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), isJustTouchedOrClicked():
		return systems.CommandStart
	default:
		return systems.CommandNone
	}
}

// isJustTouchedOrClicked 检查是否刚刚发生点击或触摸
func isJustTouchedOrClicked() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
