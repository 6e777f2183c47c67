package config

import (
	"os"

	logger "github.com/sirupsen/logrus"
)

// ConfigureLogger applies the level and output format to the global logger.
func (c *ServerConfig) ConfigureLogger() error {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logger.JSONFormatter{})
	} else {
		logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	}
	return nil
}
