package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/chainreact/pkg/app"
	"github.com/gonewx/chainreact/pkg/game"
	"github.com/gonewx/chainreact/pkg/terminal"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play the chain reaction in the terminal",
	Long: `Tui renders the same chain reaction into the terminal, one character cell
per block of the canvas. Use a terminal with true-colour support.

Keys: Space to start, R to reset, Q or Esc to quit.

The terminal is owned by the renderer, so --verbose logs go to --log-file.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var tuiLogPath string

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiLogPath, "log-file", filepath.Join(os.TempDir(), "chainreact-tui.log"), "where --verbose logs go while the terminal is in use")
}

func runTUI(cmd *cobra.Command, args []string) error {
	restoreLog, err := redirectLog(verbose, tuiLogPath)
	if err != nil {
		return err
	}
	defer restoreLog()

	chain, err := loadChainConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var chime game.Chime = game.NopChime{}
	if !mute {
		beepChime, err := terminal.NewBeepChime(chain.Chime)
		if err != nil {
			log.Printf("[Terminal] Warning: %v (chime disabled)", err)
		} else {
			defer beepChime.Close()
			chime = beepChime
		}
	}

	storage, err := game.OpenRecordStorage(app.AppName)
	if err != nil {
		log.Printf("[Terminal] Warning: %v (records will not persist)", err)
	}
	records := game.NewRecordManager(storage)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	sim := game.NewSimulationState(chain, seed)
	runner := terminal.NewRunner(screen, sim, game.NewWallClock(), chime, records)

	err = runner.Run(ctx)
	if saveErr := records.Save(); saveErr != nil {
		log.Printf("[Terminal] Failed to save records: %v", saveErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// redirectLog 让日志远离终端：verbose 时追加写入 path，否则丢弃
// 返回的函数关闭日志文件并恢复到 stderr
func redirectLog(verbose bool, path string) (func(), error) {
	if !verbose {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.Printf("[Terminal] Logging to %s", path)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
