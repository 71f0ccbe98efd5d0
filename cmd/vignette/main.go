package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/config"
	imagepkg "github.com/youruser/vignette/internal/image"
	"github.com/youruser/vignette/internal/themes"
)

var (
	dataDir    string
	listen     string
	listenPort int
	logLevel   string
	appVersion = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "vignette",
	Short: "Themed title card composer",
	Long:  "Vignette renders themed title and episode cards and exports them as PNG, over HTTP or from the command line.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the editor API server",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage vignette configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default vignette.config file in the data directory (or current directory if not specified).",
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
		c.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on (default: 8080)")
	}

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(serveCmd, configCmd, renderCmd, themesCmd)
}

// loadConfig reads the config from --data-dir and applies explicit flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	abs, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = abs
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// buildRegistry loads backgrounds and extra presets (best-effort) and builds
// the theme registry.
func buildRegistry(cfg config.Config, log *slog.Logger) (*themes.Registry, error) {
	opts := themes.Options{
		Backgrounds:  map[string]image.Image{},
		ExtraPresets: map[string][]cards.CardPreset{},
		Logger:       log,
	}
	for id, src := range cfg.Backgrounds {
		img, err := imagepkg.LoadImage(dataPath(cfg, src))
		if err != nil {
			log.Warn("failed to load background", "theme", id, "err", err)
			continue
		}
		opts.Backgrounds[id] = img
	}

	// Preset files are keyed by theme id; list the ids from a bare registry first.
	base, err := themes.NewRegistry(themes.Options{})
	if err != nil {
		return nil, err
	}
	for _, id := range base.GetThemeIDs() {
		ps, err := cards.LoadPresetsFromDataDir(cfg.DataDir, id)
		if err != nil {
			log.Warn("failed to load presets", "theme", id, "err", err)
			continue
		}
		if len(ps) > 0 {
			opts.ExtraPresets[id] = ps
		}
	}
	return themes.NewRegistry(opts)
}

// dataPath resolves a config path relative to the data dir. URLs and
// absolute paths are returned as they are.
func dataPath(cfg config.Config, src string) string {
	if strings.Contains(src, "://") || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(cfg.DataDir, src)
}

// newRasterizer loads the embedded fonts and then any replacements named in
// the config. A configured font that cannot be loaded is fatal.
func newRasterizer(cfg config.Config, log *slog.Logger) (*imagepkg.Rasterizer, error) {
	r, err := imagepkg.NewRasterizer()
	if err != nil {
		return nil, err
	}
	for key, src := range cfg.Fonts {
		path := dataPath(cfg, src)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", key, err)
		}
		if err := r.RegisterFont(key, b); err != nil {
			return nil, err
		}
		log.Info("registered font", "key", key, "path", path)
	}
	return r, nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDirAbs

	cfgPath := filepath.Join(dataDirAbs, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
