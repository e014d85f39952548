// Package cmd implements the CLI commands for chatpipe using Cobra.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "chatpipe",
	Short: "chatpipe converts chat exports into Markdown or Workbench JSON",
	Long: `chatpipe converts chat conversation exports into readable Markdown or
Workbench JSON. It recognizes Playground JSON, Workbench JSON and saved ChatGPT
HTML pages by their structure, whatever the file is called.

Usage:
  chatpipe convert <file> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chatpipe.yaml or ~/.config/chatpipe/chatpipe.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log detection and rendering details")
	rootCmd.PersistentFlags().String("log_level", "warn", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
