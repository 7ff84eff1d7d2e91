package config

import (
	logging "github.com/ipfs/go-log/v2"
)

// ApplyLogging sets the level of every logger in the process.
func ApplyLogging(cfg *Config) error {
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.SetAllLoggers(level)
	return nil
}
