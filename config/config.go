package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"
)

const (
	MinWidth = 1
	MaxWidth = 64

	MinRowBytes = 1
	MaxRowBytes = 64
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogLevel       = "info"

	// Byte-wide items by default, so pack/unpack keep the byte-granular path.
	DefaultWidth    = 8
	DefaultRowBytes = 8
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "bitstream")
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	ConfigFile string `mapstructure:"config"`
	LogLevel   string `mapstructure:"loglevel"`

	// Item width in bits, used by pack and unpack.
	Width uint `mapstructure:"width"`
	// Bytes per row, used by dump.
	RowBytes uint `mapstructure:"rowbytes"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigFile: DefaultConfigFile,
		LogLevel:   DefaultLogLevel,
		Width:      DefaultWidth,
		RowBytes:   DefaultRowBytes,
	}
}

func (cfg *Config) Validate() error {
	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: debug, info, warn, error, dpanic, panic or fatal, given: %q", cfg.LogLevel)
	}

	if cfg.Width < MinWidth {
		return fmt.Errorf("invalid `Width`; expected: >= %d, given: %d", MinWidth, cfg.Width)
	}

	if cfg.Width > MaxWidth {
		return fmt.Errorf("invalid `Width`; expected: <= %d, given: %d", MaxWidth, cfg.Width)
	}

	if cfg.RowBytes < MinRowBytes {
		return fmt.Errorf("invalid `RowBytes`; expected: >= %d, given: %d", MinRowBytes, cfg.RowBytes)
	}

	if cfg.RowBytes > MaxRowBytes {
		return fmt.Errorf("invalid `RowBytes`; expected: <= %d, given: %d", MaxRowBytes, cfg.RowBytes)
	}

	return nil
}

// Level parses LogLevel.
func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}
