// Package config provides configuration loading from YAML files and the
// legacy key=value text layout.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/osa030/daylist/internal/domain/schedule"
)

// Config represents the application configuration.
type Config struct {
	Folders    FoldersConfig           `yaml:"folders"`
	Generation GenerationConfig        `yaml:"generation"`
	Export     ExportConfig            `yaml:"export"`
	Filters    map[string]FilterConfig `yaml:"filters,omitempty"`
	Blocks     []BlockConfig           `yaml:"blocks" validate:"dive"`
}

// FoldersConfig represents the special-content folders.
// The mapstructure names are the keys of the legacy text layout.
type FoldersConfig struct {
	Special         string `yaml:"special" mapstructure:"ElementosEspeciales"`
	StationIDs      string `yaml:"station_ids" mapstructure:"Identificaciones"`
	Congratulations string `yaml:"congratulations" mapstructure:"Felicitaciones"`
	PromoA          string `yaml:"promo_a" mapstructure:"PromosA"`
	PromoB          string `yaml:"promo_b" mapstructure:"PromosB"`
}

// GenerationConfig represents content generation settings.
type GenerationConfig struct {
	TracksPerBlock   int   `yaml:"tracks_per_block" default:"15" validate:"gte=1,lte=500"`
	InsertEvery      int   `yaml:"insert_every" default:"3" validate:"gte=1,lte=50"`
	ToleranceMinutes int   `yaml:"tolerance_minutes" default:"5" validate:"gte=1,lte=60"` // 0 falls back to the default
	ReadTags         bool  `yaml:"read_tags"`
	Seed             int64 `yaml:"seed"`
}

// ExportConfig represents playlist export settings.
type ExportConfig struct {
	Output        string   `yaml:"output" default:"playlist"`
	M3UEncodings  []string `yaml:"m3u_encodings" default:"[\"windows-1252\",\"iso-8859-1\",\"iso-8859-15\",\"ibm850\"]" validate:"min=1"`
	ReadEncodings []string `yaml:"read_encodings" default:"[\"utf-8\",\"windows-1252\",\"iso-8859-1\",\"ibm850\"]" validate:"min=1"`
}

// FilterConfig represents a candidate filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// BlockConfig represents one configured hour block.
type BlockConfig struct {
	Start  string `yaml:"start" validate:"required"`
	End    string `yaml:"end" validate:"required"`
	Genre  string `yaml:"genre,omitempty"`
	Folder string `yaml:"folder,omitempty"`
}

// Load loads configuration from a YAML file, or from the legacy text
// layout when the file has a .txt extension.
// Environment variables take precedence over file values for folders.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if isLegacy(path) {
		if err := decodeLegacy(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse legacy config file")
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return finish(&cfg)
}

// Default returns the configuration used when no file is given: defaults,
// environment folders and the standard day.
func Default() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if len(cfg.Blocks) == 0 {
		cfg.SetBlocks(schedule.StandardDay())
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// Save writes the configuration as YAML, or in the legacy text layout when
// path has a .txt extension.
func Save(cfg *Config, path string) error {
	var data []byte
	if isLegacy(path) {
		if dropped := cfg.FolderlessBlocks(); len(dropped) > 0 {
			zlog.Warn().Msgf("blocks without folder not saved in legacy layout: path=%s blocks=%v", path, dropped)
		}
		data = encodeLegacy(cfg)
	} else {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to encode config")
		}
		data = out
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	zlog.Info().Msgf("config saved: path=%s blocks=%d", path, len(cfg.Blocks))
	return nil
}

// IsLegacyPath reports whether path is saved in the legacy text layout.
func IsLegacyPath(path string) bool {
	return isLegacy(path)
}

func isLegacy(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// FolderlessBlocks returns the 1-based numbers of blocks without a folder.
// The legacy text layout does not store them.
func (c *Config) FolderlessBlocks() []int {
	out := make([]int, 0)
	for i, b := range c.Blocks {
		if strings.TrimSpace(b.Folder) == "" {
			out = append(out, i+1)
		}
	}
	return out
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("DAYLIST_SPECIAL_DIR"); v != "" {
		c.Folders.Special = v
	}
	if v := os.Getenv("DAYLIST_IDS_DIR"); v != "" {
		c.Folders.StationIDs = v
	}
	if v := os.Getenv("DAYLIST_CONGRATS_DIR"); v != "" {
		c.Folders.Congratulations = v
	}
	if v := os.Getenv("DAYLIST_PROMO_A_DIR"); v != "" {
		c.Folders.PromoA = v
	}
	if v := os.Getenv("DAYLIST_PROMO_B_DIR"); v != "" {
		c.Folders.PromoB = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	// Validate block times
	if _, err := c.ScheduleBlocks(); err != nil {
		return err
	}

	return nil
}

// ScheduleBlocks converts the configured blocks. Unknown genres fall back to Variado.
func (c *Config) ScheduleBlocks() ([]schedule.BlockConfig, error) {
	out := make([]schedule.BlockConfig, 0, len(c.Blocks))
	for i, b := range c.Blocks {
		start, err := schedule.ParseTimeOfDay(b.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d: invalid start", i+1)
		}
		end, err := schedule.ParseTimeOfDay(b.End)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d: invalid end", i+1)
		}
		if end <= start {
			return nil, errors.Mark(
				errors.Newf("block %d: end %s must be after start %s", i+1, end, start),
				schedule.ErrInvalidTimeRange,
			)
		}
		genre := schedule.ParseGenre(b.Genre)
		if genre == schedule.GenreVariado && b.Genre != "" && !strings.EqualFold(strings.TrimSpace(b.Genre), string(genre)) {
			zlog.Warn().Msgf("unknown genre, using %s: block=%d genre=%q", genre, i+1, b.Genre)
		}
		out = append(out, schedule.BlockConfig{
			Start:  start,
			End:    end,
			Genre:  genre,
			Folder: b.Folder,
		})
	}
	return out, nil
}

// SetBlocks replaces the configured blocks.
func (c *Config) SetBlocks(blocks []schedule.BlockConfig) {
	c.Blocks = make([]BlockConfig, len(blocks))
	for i, b := range blocks {
		c.Blocks[i] = BlockConfig{
			Start:  b.Start.String(),
			End:    b.End.String(),
			Genre:  string(b.Genre),
			Folder: b.Folder,
		}
	}
}

// EnabledFilters returns the settings of every enabled filter by name.
func (c *Config) EnabledFilters() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for name, f := range c.Filters {
		if f.Enabled {
			out[name] = f.Settings
		}
	}
	return out
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}
