package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// logger is shared by the commands and handed to the pipeline.
var logger = logrus.New()

// setupLogging points the logger at w and applies the configured level.
// --verbose forces debug.
func setupLogging(w io.Writer) error {
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
		return nil
	}

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	return nil
}
