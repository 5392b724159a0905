package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitstream/config"
)

var (
	Version = "0.0.0"
	Commit  = ""
)

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	cfg         *config.Config
	printConfig bool
	logger      *zap.Logger
}

// NewRootCmd returns the bitcli command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "bitcli",
		Short: "Read and write byte streams bit by bit",
		Long: `bitcli encodes bitstrings into bytes and decodes bytes back into bitstrings,
most-significant bit first. Partial bytes are padded with zero bits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfg.ConfigFile, "config", c.cfg.ConfigFile, "Path to configuration file")
	flags.StringVar(&c.cfg.LogLevel, "loglevel", c.cfg.LogLevel, "log level (debug, info, warn, error, dpanic, panic, fatal)")
	flags.UintVar(&c.cfg.Width, "width", c.cfg.Width, "item width in bits for pack and unpack")
	flags.UintVar(&c.cfg.RowBytes, "rowbytes", c.cfg.RowBytes, "bytes per row for dump")
	flags.BoolVar(&c.printConfig, "printconfig", false, "print the used config")

	rootCmd.AddCommand(
		newEncodeCmd(c),
		newDecodeCmd(c),
		newDumpCmd(c),
		newPackCmd(c),
		newUnpackCmd(c),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := loadConfig(cmd, c.cfg); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(c.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	c.logger = logger

	if c.printConfig {
		spew.Fdump(cmd.ErrOrStderr(), c.cfg)
	}
	return nil
}

// newLogger builds a console logger on stderr; stdout is reserved for data.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of bitcli",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bitcli %s %s\n", Version, Commit)
		},
	}
}
