package config

import (
	"fmt"

	"github.com/go-sif/columnar/logging"
	"github.com/spf13/viper"
)

// Options configures aggregation defaults, Frame column validation and logging
type Options struct {
	// SkipNaN drops NaN values before aggregating floating point columns, instead of propagating them
	SkipNaN bool `mapstructure:"skip_nan"`
	// DDOF is the delta degrees of freedom used by the variance and standard deviation aggregators
	DDOF int `mapstructure:"ddof"`
	// Parallelism is the number of columns a Two-Step aggregation may process concurrently
	Parallelism int `mapstructure:"parallelism"`
	// AllowNullFrames permits nil elements in Frame columns
	AllowNullFrames bool `mapstructure:"allow_null_frames"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Default returns Options populated with default values
func Default() *Options {
	opts := &Options{DDOF: 1, AllowNullFrames: true}
	ensureDefaultOptionsValues(opts)
	return opts
}

// ensureDefaultOptionsValues fills in unset fields which have non-zero defaults
func ensureDefaultOptionsValues(opts *Options) {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	if opts.Log.Level == "" {
		opts.Log.Level = "INFO"
	}
	if opts.Log.Format == "" {
		opts.Log.Format = "text"
	}
}

// Load reads Options from a YAML file. Keys missing from the file keep their defaults.
func Load(path string) (*Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	ensureDefaultOptionsValues(&opts)
	if opts.DDOF < 0 {
		return nil, fmt.Errorf("ddof must not be negative, got %d", opts.DDOF)
	}
	if _, err := logging.StringToLogLevel(opts.Log.Level); err != nil {
		return nil, err
	}
	return &opts, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("skip_nan", false)
	v.SetDefault("ddof", 1)
	v.SetDefault("parallelism", 1)
	v.SetDefault("allow_null_frames", true)
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
}

// LoggingConfig converts the log section of these Options into a logging.Config
func (o *Options) LoggingConfig() logging.Config {
	level, err := logging.StringToLogLevel(o.Log.Level)
	if err != nil {
		level = logging.InfoLevel
	}
	return logging.Config{Level: level, Format: o.Log.Format}
}
