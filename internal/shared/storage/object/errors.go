package object

import "fmt"

// ConfigError reports a required storage setting that is missing.
type ConfigError struct {
	Backend string
	Key     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s not set", e.Key)
}
