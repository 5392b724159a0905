package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spacemeshos/bitstream/config"
)

// loadConfig merges the config file into cfg. Flags set on the command line
// take precedence over the file, which takes precedence over flag defaults.
// A missing config file is ignored unless --config was given explicitly.
func loadConfig(cmd *cobra.Command, cfg *config.Config) error {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	fileLocation := smutil.GetCanonicalPath(cfg.ConfigFile)
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return fmt.Errorf("failed to read config file %v: %w", fileLocation, err)
		}
	}

	if err := vip.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}
