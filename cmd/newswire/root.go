package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"newswire/internal/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "newswire",
	Short:        "Newswire video-news catalog",
	Long:         "newswire serves and browses the newswire story catalog with caching and offline sample data.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file (overrides CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(recommendCmd)
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.FromEnv()
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "[newswire] ", log.LstdFlags|log.Lshortfile)
}
