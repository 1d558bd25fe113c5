package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Initialize writes a default configuration into the directory and returns
// the loaded result. Existing files are left untouched.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	switch _, err := os.Stat(configPath); {
	case err == nil:
		logger.Printf("%s already exists, skipping", ConfigurationName)
	case os.IsNotExist(err):
		logger.Printf("writing %s", ConfigurationName)
		if err := os.WriteFile(configPath, defaultConfigData, 0600); err != nil {
			return nil, fmt.Errorf("couldn't write configuration: %w", err)
		}
	default:
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Make sure the event log is in place so reports work before the
	// first serve.
	fd, err := cfg.OpenAppLog()
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	logger.Println("done, edit config.yaml to match your wiring then run serve")
	return cfg, nil
}
