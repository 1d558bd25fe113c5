package config

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(io.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("ReadAppLog", func(t *testing.T) {
		fd, err := cfg.ReadAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("Idempotent", func(t *testing.T) {
		if _, err := Initialize(tempDir, log.New(io.Discard, "", 0)); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_configFilePath(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(io.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Load accepts the path to the file itself too.
	cfg, err := Load(tempDir + "/" + ConfigurationName)
	assert.Nil(t, err)
	assert.NotNil(t, cfg)
}
