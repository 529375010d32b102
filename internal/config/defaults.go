package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Bundle:   "javascript",
		Prettier: "auto",
		Project: ProjectConfig{
			Root: ".",
		},
		Output: OutputConfig{
			Format: "json",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Cache: CacheConfig{
			MaxEntries: 256,
		},
	}
}
