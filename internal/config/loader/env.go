package loader

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// LoadEnv overlays environment variables named PREFIX_<FIELD> onto v, where
// FIELD is the field name split into upper-case words (LogLevel becomes
// LOG_LEVEL) for fields tagged split_words. Fields whose variable is unset
// keep their current value. Unprefixed variables are never read.
func LoadEnv(prefix string, v any) error {
	if err := envconfig.Process(prefix, v); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}
