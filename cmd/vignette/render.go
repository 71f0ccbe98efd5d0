package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/export"
	"github.com/youruser/vignette/internal/themes"
	"github.com/youruser/vignette/internal/util"
)

var (
	renderTheme  string
	renderPreset string
	renderState  string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card to a PNG file",
	Long:  "Render one card from a preset and/or a JSON state file and write it as {prefix}-{slug}-{date}.png.",
	RunE:  runRender,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes and their presets",
	RunE:  runThemes,
}

func init() {
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme id (default: config default_theme)")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "Preset id to apply")
	renderCmd.Flags().StringVar(&renderState, "state", "", "JSON file with a card state")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
}

func readState(path string) (*cards.CardState, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s cards.CardState
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	reg, err := buildRegistry(cfg, log)
	if err != nil {
		return err
	}
	id := renderTheme
	if id == "" {
		id = cfg.DefaultTheme
	}
	t, ok := reg.GetTheme(id)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", id, reg.GetThemeIDs())
	}

	state := t.NewState()
	if renderState != "" {
		s, err := readState(renderState)
		if err != nil {
			return err
		}
		state = *s
	}
	if renderPreset != "" {
		p, ok := t.Preset(renderPreset)
		if !ok {
			return fmt.Errorf("theme %s: unknown preset %q", t.ID, renderPreset)
		}
		state = p.Apply(state)
	}
	if err := state.Validate(); err != nil {
		return err
	}

	raster, err := newRasterizer(cfg, log)
	if err != nil {
		return err
	}
	view := themes.NewView(t, raster, log)
	if err := view.Render(state); err != nil {
		return err
	}
	b, ok := view.Handle().ExportPNG()
	if !ok {
		return fmt.Errorf("export failed")
	}

	if err := util.EnsureDir(renderOut); err != nil {
		return err
	}
	var primary string
	if len(state.HeaderLines) > 0 {
		primary = state.HeaderLines[0]
	}
	path := filepath.Join(renderOut, export.Filename(cfg.ExportPrefix, primary, t.ID, time.Now()))
	if err := util.WriteFileAtomic(path, b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", path, humanize.Bytes(uint64(len(b))))
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg, newLogger("error"))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, t := range reg.GetAllThemes() {
		fmt.Fprintf(out, "%s\t%s (%d)\n", t.ID, t.Name, t.Year)
		for _, p := range t.Presets {
			fmt.Fprintf(out, "  %s\t%s\n", p.ID, p.Name)
		}
	}
	return nil
}
