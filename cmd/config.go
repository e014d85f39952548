package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Config is the resolved configuration for a conversion run. Values come
// from flags, CHATPIPE_* environment variables and the config file, in that
// order of precedence.
type Config struct {
	Format      core.Format
	OutputDir   string
	Title       string
	Frontmatter bool
	Envelope    bool
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chatpipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chatpipe"))
		}
	}

	viper.SetEnvPrefix("CHATPIPE")
	viper.AutomaticEnv()

	viper.SetDefault("format", string(core.FormatMarkdown))
	viper.SetDefault("log_level", "warn")

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

// loadConfig reads the conversion settings out of viper.
func loadConfig() (Config, error) {
	format, err := core.ParseFormat(viper.GetString("format"))
	if err != nil {
		return Config{}, err
	}
	return Config{
		Format:      format,
		OutputDir:   viper.GetString("output_dir"),
		Title:       viper.GetString("title"),
		Frontmatter: viper.GetBool("frontmatter"),
		Envelope:    viper.GetBool("envelope"),
	}, nil
}
