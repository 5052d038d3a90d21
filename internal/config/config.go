// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the renderer configuration
type Config struct {
	// Environment
	Environment string

	// Engine
	SampleRate int
	BlockSize  int
	Channels   int
	BitDepth   int
	Tempo      float64 // bpm, for MIDI ticks and the beat variable in sessions

	// Output
	OutputDir string

	// Observability
	SentryDSN string

	// Warnings lists variables that were set but could not be parsed.
	Warnings []string
}

// LoadEnv reads the given .env files, or .env in the working directory when
// none are given, without overriding variables that are already set. It
// returns false when nothing was loaded.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

func Load() *Config {
	c := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		OutputDir:   getEnv("BLOCKRENDER_OUTPUT_DIR", "."),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}

	c.SampleRate = c.getInt("BLOCKRENDER_SAMPLE_RATE", 48000)
	c.BlockSize = c.getInt("BLOCKRENDER_BLOCK_SIZE", 512)
	c.Channels = c.getInt("BLOCKRENDER_CHANNELS", 2)
	c.BitDepth = c.getInt("BLOCKRENDER_BIT_DEPTH", 16)
	c.Tempo = c.getFloat("BLOCKRENDER_TEMPO", 120)

	return c
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	case c.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidConfig, c.Channels)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("%w: bit depth %d", ErrInvalidConfig, c.BitDepth)
	case c.Tempo <= 0:
		return fmt.Errorf("%w: tempo %v", ErrInvalidConfig, c.Tempo)
	case c.OutputDir == "":
		return fmt.Errorf("%w: empty output directory", ErrInvalidConfig)
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not an integer, using %d", key, value, defaultValue))
		return defaultValue
	}
	return n
}

func (c *Config) getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a number, using %v", key, value, defaultValue))
		return defaultValue
	}
	return f
}
