package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/youruser/vignette/internal/util"
)

// FileName is the config file looked up in the data dir.
const FileName = "vignette.config"

type Config struct {
	DataDir      string            `json:"data_dir"`
	ListenAddr   string            `json:"listen_addr"`
	ExportPrefix string            `json:"export_prefix"`
	DefaultTheme string            `json:"default_theme"`
	Backgrounds  map[string]string `json:"backgrounds,omitempty"`
	// Fonts maps a font key (serif-bold, serif-italic, sans-bold,
	// sans-regular) to a TrueType file replacing the embedded face.
	Fonts    map[string]string `json:"fonts,omitempty"`
	LogLevel string            `json:"log_level"`
}

func Default() Config {
	return Config{
		DataDir:      ".",
		ListenAddr:   ":8080",
		ExportPrefix: "vignette",
		DefaultTheme: "evangelion",
		Backgrounds:  map[string]string{},
		Fonts:        map[string]string{},
		LogLevel:     "info",
	}
}

// Load reads the config from dataDir. A missing file yields the defaults.
func Load(dataDir string) (Config, error) {
	cfgPath := filepath.Join(dataDir, FileName)

	f, err := os.Open(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.DataDir = dataDir
			return cfg, nil
		}
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, err
	}

	def := Default()
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = def.ExportPrefix
	}
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = def.DefaultTheme
	}
	if cfg.Backgrounds == nil {
		cfg.Backgrounds = map[string]string{}
	}
	if cfg.Fonts == nil {
		cfg.Fonts = map[string]string{}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}

	return cfg, nil
}

// Save writes cfg into its data dir, replacing any previous file atomically.
func Save(cfg Config) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(filepath.Join(cfg.DataDir, FileName), append(b, '\n'))
}
