package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fridaylabs/friday-go/config"
)

var (
	configPath string

	cfg *config.Config
	log *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "friday",
	Short: "Friday is a voice-style personal assistant",
	Long: `Friday answers questions, remembers facts about you, schedules
events, checks the weather and falls back to generative conversation
with semantic memory of past exchanges.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; explicit env vars still apply.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		log = newLogger(cfg.Logging)
		return nil
	},
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
}

func newLogger(lc config.LoggingConfig) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if lc.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
