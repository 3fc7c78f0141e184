// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the YAML document.
const (
	EnvSeed     = "CTMCSIM_SEED"
	EnvDuration = "CTMCSIM_DURATION"
	EnvBurnIn   = "CTMCSIM_BURN_IN"
)

// DefaultEnvFile is read by LoadEnv when no file is named. It may be absent.
const DefaultEnvFile = ".env"

// LoadEnv reads the named dotenv files (or DefaultEnvFile) and applies the
// CTMCSIM_* overrides to c. Variables already set in the process
// environment win over the files. Named files must exist.
func LoadEnv(c *Config, files ...string) error {
	env := map[string]string{}
	if len(files) == 0 {
		m, err := godotenv.Read(DefaultEnvFile)
		switch {
		case err == nil:
			env = m
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("config: %s: %w", DefaultEnvFile, err)
		}
	} else {
		m, err := godotenv.Read(files...)
		if err != nil {
			return fmt.Errorf("config: env files: %w", err)
		}
		env = m
	}
	for _, k := range []string{EnvSeed, EnvDuration, EnvBurnIn} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}

	return c.ApplyEnv(env)
}

// ApplyEnv applies the CTMCSIM_* keys present in env. Other keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvSeed]; ok {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %v: %w", EnvSeed, v, err, ErrInvalidConfig)
		}
		c.Seed = s
	}
	if v, ok := env[EnvDuration]; ok {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %v: %w", EnvDuration, v, err, ErrInvalidConfig)
		}
		c.Duration = d
	}
	if v, ok := env[EnvBurnIn]; ok {
		b, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %v: %w", EnvBurnIn, v, err, ErrInvalidConfig)
		}
		c.BurnIn = b
	}

	return nil
}
