package cmd

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/embedded"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "chainreact" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "chainreact")
	}

	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "tui" {
			found = true
		}
	}
	if !found {
		t.Error("missing tui subcommand")
	}

	for _, name := range []string{"config", "verbose", "seed", "mute"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

// TestLoadChainConfig 测试布局配置的加载优先级
func TestLoadChainConfig(t *testing.T) {
	t.Run("未初始化内置资源时使用默认值", func(t *testing.T) {
		embedded.Init(nil)
		cfg, err := loadChainConfig("")
		if err != nil {
			t.Fatalf("loadChainConfig() error: %v", err)
		}
		if len(cfg.Steps) != len(config.DefaultChainConfig().Steps) {
			t.Errorf("steps: got %d", len(cfg.Steps))
		}
	})

	t.Run("读取内置布局", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			config.DefaultChainConfigPath: &fstest.MapFile{Data: []byte(`
canvas: {width: 400, height: 300, groundHeight: 20}
timing: {tps: 60}
steps:
  - {kind: bell, x: 200, y: 200}
burst: {count: 10, minXRatio: 0, maxXRatio: 1, minY: -5, maxY: 0, minSpeed: 1, maxSpeed: 2, minSize: 2, maxSize: 3, spin: 0.1}
`)},
		})
		t.Cleanup(func() { embedded.Init(nil) })

		cfg, err := loadChainConfig("")
		if err != nil {
			t.Fatalf("loadChainConfig() error: %v", err)
		}
		if cfg.Canvas.Width != 400 || len(cfg.Steps) != 1 {
			t.Errorf("unexpected config: %+v", cfg.Canvas)
		}
	})

	t.Run("内置资源缺少布局文件时使用默认值", func(t *testing.T) {
		embedded.Init(fstest.MapFS{"data/other.yaml": &fstest.MapFile{Data: []byte("x: 1")}})
		t.Cleanup(func() { embedded.Init(nil) })

		cfg, err := loadChainConfig("")
		if err != nil {
			t.Fatalf("loadChainConfig() error: %v", err)
		}
		if cfg.Canvas.Width != config.DefaultChainConfig().Canvas.Width {
			t.Errorf("expected default canvas, got %+v", cfg.Canvas)
		}
	})

	t.Run("指定文件优先", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chain.yaml")
		content := `
canvas: {width: 320, height: 200, groundHeight: 20}
timing: {tps: 30}
steps: []
burst: {count: 0}
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		cfg, err := loadChainConfig(path)
		if err != nil {
			t.Fatalf("loadChainConfig() error: %v", err)
		}
		if cfg.Canvas.Width != 320 || cfg.Timing.TPS != 30 {
			t.Errorf("unexpected config: %+v %+v", cfg.Canvas, cfg.Timing)
		}
	})

	t.Run("指定文件无效", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("timing: {tps: 0}\ncanvas: {width: 1, height: 1}\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := loadChainConfig(path)
		if err == nil || !strings.Contains(err.Error(), "timing.tps") {
			t.Errorf("expected tps validation error, got %v", err)
		}
	})
}

// TestRedirectLog 测试终端模式下日志写入文件而不是终端
func TestRedirectLog(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if tuiCmd.Flags().Lookup("log-file") == nil {
		t.Fatal("missing tui flag --log-file")
	}

	t.Run("verbose 写入文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tui.log")
		restore, err := redirectLog(true, path)
		if err != nil {
			t.Fatalf("redirectLog() error: %v", err)
		}
		log.Printf("[Terminal] frame %d", 42)
		restore()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(data), "[Terminal] frame 42") {
			t.Errorf("log file missing entry: %q", data)
		}
	})

	t.Run("非 verbose 不创建文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tui.log")
		restore, err := redirectLog(false, path)
		if err != nil {
			t.Fatalf("redirectLog() error: %v", err)
		}
		log.Printf("[Terminal] dropped")
		restore()

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected no log file, stat err = %v", err)
		}
	})

	t.Run("无法打开文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "tui.log")
		if _, err := redirectLog(true, path); err == nil {
			t.Error("expected error for unwritable log path")
		}
	})
}
