// Command qrfix repairs and decodes damaged QR code matrices.
package main

import (
	"fmt"
	"os"

	"github.com/ericlevine/qrfix/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qrfix",
	Short: "Reconstruct and decode damaged QR code matrices",
	Long: `qrfix reads a QR matrix written as text, with unreadable modules marked
as unknown, repairs the fixed function patterns, recovers the format
information by matching the surviving format modules and decodes the payload.

Run "qrfix format" for a description of the matrix text format.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every reconstruction attempt")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")

	initFixCmd()
	initEncodeCmd()
	initImageCmd()
	initRenderCmd()
	rootCmd.AddCommand(fixCmd, encodeCmd, genCmd, formatCmd, imageCmd, renderCmd)
}

// currentConfig returns the loaded configuration or the defaults when
// the command runs outside the root pre-run hook.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
