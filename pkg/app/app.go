// Package app 提供窗口模式的应用包装器
//
// 该包把初始化逻辑从命令行入口中提取出来：加载好的布局配置交给 NewApp，
// 由它组装模拟状态、音频、播放记录和场景，并实现 ebiten.Game。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "chainreact"

// WindowTitle 窗口标题
const WindowTitle = "Chain Reaction"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Chain 已验证的布局配置
	Chain *config.ChainConfig
	// Seed 彩纸随机种子
	Seed uint64
	// Mute 关闭铃声
	Mute bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	chain        *config.ChainConfig
	sceneManager *game.SceneManager

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	chain := cfg.Chain
	if chain == nil {
		chain = config.DefaultChainConfig()
	}
	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("布局配置无效: %w", err)
	}

	// 铃声
	audioContext := audio.NewContext(game.SampleRate)
	audioManager := game.NewAudioManager(audioContext, chain.Chime)
	audioManager.SetMuted(cfg.Mute)
	log.Printf("[App] AudioManager initialized (muted: %v)", cfg.Mute)

	// 播放记录：存储不可用时以降级模式运行
	storage, err := game.OpenRecordStorage(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (records will not persist)", err)
	}
	records := game.NewRecordManager(storage)

	sim := game.NewSimulationState(chain, cfg.Seed)
	scene := scenes.NewChainScene(sim, game.NewWallClock(), audioManager, records, nil)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	log.Printf("[App] Started: %d steps, canvas %dx%d, seed %d",
		len(chain.Steps), chain.Canvas.Width, chain.Canvas.Height, cfg.Seed)

	return &App{
		chain:        chain,
		sceneManager: sceneManager,
	}, nil
}

// Run 打开窗口并进入主循环，窗口关闭时保存记录
func (a *App) Run() error {
	ebiten.SetWindowSize(a.chain.Canvas.Width, a.chain.Canvas.Height)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetTPS(a.chain.Timing.TPS)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}

	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: failed to save on exit")
	}
	return err
}

// Update 更新逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.chain.Canvas.Width, a.chain.Canvas.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(a.chain.Timing.TPS))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧 letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（画布固定大小，Ebitengine 负责缩放）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.chain.Canvas.Width, a.chain.Canvas.Height
}
