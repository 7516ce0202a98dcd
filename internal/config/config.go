package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// ScrollSettings configures the list box scroll container.
type ScrollSettings struct {
	UnitX              int64 `json:"unit_x"`
	UnitY              int64 `json:"unit_y"`
	Animated           bool  `json:"animated"`
	HoldEnd            bool  `json:"hold_end"`
	ScrollBarThickness int32 `json:"scrollbar_thickness"`
	ScrollBarFloat     bool  `json:"scrollbar_float"`
	ScrollBarPadding   int32 `json:"scrollbar_padding"`
}

// SelectionSettings configures frame selection. Zero deltas mean one
// scroll unit per auto-scroll step.
type SelectionSettings struct {
	Enabled     bool  `json:"enabled"`
	Threshold   int32 `json:"threshold"`
	IntervalMs  int   `json:"interval_ms"`
	DeltaX      int64 `json:"delta_x"`
	DeltaY      int64 `json:"delta_y"`
	StickyNudge int32 `json:"sticky_nudge"`
	Border      bool  `json:"border"`
}

// Interval returns the auto-scroll repeat interval.
func (s SelectionSettings) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// UISettings stores user-facing display preferences.
type UISettings struct {
	DPIScale        int  `json:"dpi_scale"` // percent, 100 = unscaled
	ShowInfo        bool `json:"show_info"`
	ShowKeymapHints bool `json:"show_keymap_hints"`
}

// Config holds the application configuration
type Config struct {
	Paths     *Paths            `json:"-"`
	Scroll    ScrollSettings    `json:"scroll"`
	Selection SelectionSettings `json:"selection"`
	UI        UISettings        `json:"ui"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigIn(paths), nil
}

func defaultConfigIn(paths *Paths) *Config {
	return &Config{
		Paths: paths,
		Scroll: ScrollSettings{
			UnitX:              1,
			UnitY:              1,
			Animated:           true,
			ScrollBarThickness: 1,
		},
		Selection: SelectionSettings{
			Enabled:     true,
			Threshold:   4,
			IntervalMs:  50,
			StickyNudge: 1,
			Border:      true,
		},
		UI: UISettings{
			DPIScale:        100,
			ShowInfo:        true,
			ShowKeymapHints: true,
		},
	}
}

// Load loads config overrides from ~/.scrollbox/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom loads overrides from paths.ConfigPath on top of the defaults.
// A missing file is not an error.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := defaultConfigIn(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Decoding over the defaults keeps every key the file leaves out.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the settings sections, keeping unknown keys already in the file.
func (c *Config) Save() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	path := c.Paths.ConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	payload := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &payload)
	}
	payload["scroll"] = c.Scroll
	payload["selection"] = c.Selection
	payload["ui"] = c.UI

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Scale applies the DPI percentage to a length in cells. Positive inputs
// never scale below one.
func (c *Config) Scale(px int32) int32 {
	pct := int64(100)
	if c != nil && c.UI.DPIScale > 0 {
		pct = int64(c.UI.DPIScale)
	}
	out := int32(int64(px) * pct / 100)
	if px > 0 && out < 1 {
		out = 1
	}
	return out
}

func (c *Config) normalize() {
	if c.Scroll.UnitX < 1 {
		c.Scroll.UnitX = 1
	}
	if c.Scroll.UnitY < 1 {
		c.Scroll.UnitY = 1
	}
	if c.Scroll.ScrollBarThickness < 1 {
		logging.Warn("config: scrollbar_thickness %d out of range, using 1", c.Scroll.ScrollBarThickness)
		c.Scroll.ScrollBarThickness = 1
	}
	if c.Scroll.ScrollBarPadding < 0 {
		c.Scroll.ScrollBarPadding = 0
	}
	if c.Selection.Threshold <= 0 {
		logging.Warn("config: threshold %d out of range, using 4", c.Selection.Threshold)
		c.Selection.Threshold = 4
	}
	if c.Selection.IntervalMs <= 0 {
		logging.Warn("config: interval_ms %d out of range, using 50", c.Selection.IntervalMs)
		c.Selection.IntervalMs = 50
	}
	if c.Selection.DeltaX < 0 {
		c.Selection.DeltaX = 0
	}
	if c.Selection.DeltaY < 0 {
		c.Selection.DeltaY = 0
	}
	if c.Selection.StickyNudge < 0 {
		c.Selection.StickyNudge = 0
	}
	if c.UI.DPIScale <= 0 {
		c.UI.DPIScale = 100
	}
}
