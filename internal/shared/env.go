package shared

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overrides config fields with any MUSE_* environment variables that are set.
//
// Unset variables leave the file (or default) values untouched.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	return nil
}
