package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"aastha/cmd/aastha/shell"
	"aastha/cmd/aastha/ui"
	"aastha/internal/camera"
	"aastha/internal/config"
	"aastha/internal/locale"
	"aastha/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	langFlag   string
	variant    string
	darkFlag   bool
	cameraFlag string

	// Set in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aastha",
	Short: "Aastha - your farming companion",
	Long: `Aastha helps farmers check crop health from the terminal.

Scan a crop with the camera, read the diagnosis and treatment plan, ask the
assistant a question, or review your farm's history. English and Punjabi
are supported.

Run without arguments to start the interactive app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&cameraFlag, "camera", "", "Camera driver: browser, pattern or none")
	rootCmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Start in this language (en, pa) and skip the picker")
	rootCmd.Flags().StringVar(&variant, "variant", "", "Visual variant: glass or card")
	rootCmd.Flags().BoolVar(&darkFlag, "dark", false, "Use the dark theme")

	rootCmd.AddCommand(cameraCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		if _, ok := locale.Parse(langFlag); !ok {
			return nil, fmt.Errorf("unsupported language %q (use en or pa)", langFlag)
		}
		c.UI.Language = langFlag
	}
	if flags.Changed("variant") {
		c.UI.Variant = variant
	}
	if flags.Changed("dark") {
		c.UI.Theme = config.ThemeLight
		if darkFlag {
			c.UI.Theme = config.ThemeDark
		}
	}
	if flags.Changed("camera") {
		c.Camera.Driver = cameraFlag
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// cameraOptions converts camera settings into driver options.
func cameraOptions(c config.CameraConfig) camera.Options {
	return camera.Options{
		Driver:   c.Driver,
		Browser:  c.Browser,
		Headless: c.Headless,
		Fake:     c.Fake,
		Timeout:  c.Timeout,
	}
}

// runInteractive starts the full-screen app and live config reload.
func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	device, err := camera.NewDevice(cameraOptions(cfg.Camera), logger)
	if err != nil {
		return err
	}

	model := shell.New(shell.Options{
		Config:       cfg,
		Device:       device,
		Logger:       logger,
		DarkDetected: ui.DetectDark(),
	})
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if watcher, err := config.NewWatcher(configPath, logger); err != nil {
		logger.Warn("config reload disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
		err := watcher.Start(ctx, func(c *config.Config, err error) {
			p.Send(shell.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logger.Warn("config reload disabled", zap.Error(err))
		}
	}

	logger.Info("starting", zap.String("camera", device.Name()), zap.String("variant", cfg.UI.Variant))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
