package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/gonewx/chainreact/pkg/app"
	"github.com/gonewx/chainreact/pkg/config"
	"github.com/gonewx/chainreact/pkg/embedded"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chainreact",
	Short: "Rube Goldberg chain-reaction animation",
	Long: `Chainreact plays a five-stage chain reaction: a rolling ball topples a
row of dominoes, the last domino trips a lever that launches a cart, the cart
knocks a book off its shelf and the book rings a bell. Confetti falls when the
chain completes.

Press Space to start, R to reset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(verbose)
	},
	RunE: runWindow,
}

var (
	configPath string
	verbose    bool
	seed       uint64
	mute       bool
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "chain layout file (default is the built-in data/chain.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "random seed for the confetti burst")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "disable the bell chime")
}

func runWindow(cmd *cobra.Command, args []string) error {
	chain, err := loadChainConfig(configPath)
	if err != nil {
		return err
	}

	a, err := app.NewApp(app.Config{
		Verbose: verbose,
		Chain:   chain,
		Seed:    seed,
		Mute:    mute,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	return a.Run()
}

// loadChainConfig 按优先级加载布局：--config 指定的文件 → 内置 data/chain.yaml → 代码内默认值
func loadChainConfig(path string) (*config.ChainConfig, error) {
	if path != "" {
		cfg, err := config.LoadChainConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded chain layout from %s", path)
		return cfg, nil
	}

	switch {
	case !embedded.IsInitialized():
		log.Printf("[Config] Embedded resources not initialized, using defaults")
		return config.DefaultChainConfig(), nil
	case !embedded.Exists(config.DefaultChainConfigPath):
		log.Printf("[Config] Built-in layout %s missing, using defaults", config.DefaultChainConfigPath)
		return config.DefaultChainConfig(), nil
	}

	data, err := embedded.ReadFile(config.DefaultChainConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in chain layout: %w", err)
	}
	cfg, err := config.ParseChainConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] Loaded built-in chain layout")
	return cfg, nil
}

// configureLogging 非 verbose 模式下丢弃日志
func configureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}
