package filter

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// MinSizeConfig represents the configuration for MinSizeFilter.
type MinSizeConfig struct {
	MinKB int64 `yaml:"min_kb" mapstructure:"min_kb" default:"16" validate:"gte=1"`
}

// MinSizeFilter rejects truncated or placeholder audio files.
type MinSizeFilter struct {
	config *MinSizeConfig
}

// NewMinSizeFilter creates a new minimum size filter.
func NewMinSizeFilter() *MinSizeFilter {
	return &MinSizeFilter{}
}

func (f *MinSizeFilter) Name() string {
	return "min_size_filter"
}

func (f *MinSizeFilter) Description() string {
	return "Rejects audio files smaller than min_kb kilobytes"
}

func (f *MinSizeFilter) ReturnCodes() []string {
	return []string{"min_size"}
}

func (f *MinSizeFilter) ValidateConfig(settings map[string]any) error {
	var config MinSizeConfig

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(&config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	f.config = &config
	zlog.Info().Msgf("min size filter config: %+v", config)
	return nil
}

func (f *MinSizeFilter) Check(ctx context.Context, c Candidate) Result {
	// If config is not set, accept all files
	if f.config == nil {
		return Accept()
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		return Reject("min_size")
	}
	if info.Size() < f.config.MinKB*1024 {
		return Reject("min_size")
	}
	return Accept()
}

func init() {
	Register("min_size_filter", func() Filter {
		return &MinSizeFilter{}
	})
}
